package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabulist/fabula/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate <script>",
	Short: "Check the story for consistency",
	Long:  `Crawls the story from the start branch and reports dead links and unreachable branches.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := loadDocument(args)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		unreachable, err := validator.Check(doc)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		// Unreachable branches are suspicious but not fatal.
		for _, id := range unreachable {
			fmt.Printf("warning: branch %q is unreachable from the start\n", id)
		}
		fmt.Println("Story is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
