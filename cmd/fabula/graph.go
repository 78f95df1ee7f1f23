package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabulist/fabula/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <script>",
	Short: "Export the story graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the story's chapters, branches and choices.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := loadDocument(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(graph.GenerateMermaid(doc))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
