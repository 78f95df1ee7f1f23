package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabulist/fabula"
)

var rootCmd = &cobra.Command{
	Use:   "fabula",
	Short: "Fabula is a branching narrative engine",
	Long:  `Fabula plays, validates and exports interactive stories written in a plain-text script language.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadDocument reads and parses the script named by the first argument.
func loadDocument(args []string) (*fabula.Document, error) {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	doc, err := fabula.Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
