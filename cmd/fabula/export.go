package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fabulist/fabula/pkg/domain"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <script>",
	Short: "Export the story as YAML",
	Long:  `Parses the script and dumps the resulting story structure as YAML, for tooling and inspection.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		doc, err := loadDocument(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if err := yaml.NewEncoder(os.Stdout).Encode(exportView(doc)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

// The export types flatten the parsed document into plain YAML. Branch
// bodies are interfaces in the domain model, so the view splits them back
// into paragraphs, actions and choices.
type storyExport struct {
	Title        string          `yaml:"title"`
	Start        string          `yaml:"start"`
	Ending       string          `yaml:"ending"`
	ShowDisabled bool            `yaml:"showDisabled"`
	Variables    []actionExport  `yaml:"variables,omitempty"`
	Chapters     []chapterExport `yaml:"chapters"`
}

type chapterExport struct {
	ID       string         `yaml:"id"`
	Title    string         `yaml:"title"`
	Branches []branchExport `yaml:"branches"`
}

type branchExport struct {
	ID         string         `yaml:"id"`
	Title      string         `yaml:"title"`
	Paragraphs []string       `yaml:"paragraphs,omitempty"`
	Actions    []actionExport `yaml:"actions,omitempty"`
	Choices    []choiceExport `yaml:"choices,omitempty"`
}

type actionExport struct {
	Var   string `yaml:"var"`
	Op    string `yaml:"op"`
	Value string `yaml:"value"`
}

type choiceExport struct {
	Text      string `yaml:"text"`
	Condition string `yaml:"condition,omitempty"`
	Target    string `yaml:"target"`
}

func exportView(doc *domain.Document) storyExport {
	out := storyExport{
		Title:        doc.Title,
		Start:        doc.StartBranch,
		Ending:       doc.EndingText,
		ShowDisabled: doc.ShowDisabled,
	}
	for _, a := range doc.Init {
		out.Variables = append(out.Variables, exportAction(a))
	}
	for _, ch := range doc.Chapters {
		chapter := chapterExport{ID: ch.ID, Title: ch.Title}
		for _, b := range ch.Branches {
			branch := branchExport{
				ID:         b.ID,
				Title:      b.Title,
				Paragraphs: b.Paragraphs(),
			}
			for _, a := range b.Actions() {
				branch.Actions = append(branch.Actions, exportAction(a))
			}
			for _, c := range b.Choices() {
				branch.Choices = append(branch.Choices, choiceExport{
					Text:      c.Text,
					Condition: c.ConditionText,
					Target:    c.Target,
				})
			}
			chapter.Branches = append(chapter.Branches, branch)
		}
		out.Chapters = append(out.Chapters, chapter)
	}
	return out
}

func exportAction(a domain.Action) actionExport {
	return actionExport{Var: a.Var, Op: a.Op, Value: a.ValueText}
}
