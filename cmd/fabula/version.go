package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabulist/fabula"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fabula",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fabula version %s\n", fabula.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
