package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabulist/fabula"
	"github.com/fabulist/fabula/internal/presentation/tui"
	"github.com/fabulist/fabula/pkg/domain"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <script>",
	Short: "Play a story interactively",
	Long:  `Starts the interactive terminal player for the given script file.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		showDisabled, _ := cmd.Flags().GetBool("show-disabled")

		doc, err := loadDocument(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		opts := []fabula.Option{}
		if cmd.Flags().Changed("show-disabled") {
			opts = append(opts, fabula.WithShowDisabled(showDisabled))
		}
		rt, err := fabula.NewRuntime(doc, opts...)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if !plain {
			tui.PrintBanner()
		}
		if err := playLoop(rt, plain); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Bool("plain", false, "Disable markdown rendering and the banner")
	playCmd.Flags().Bool("show-disabled", false, "List choices whose condition fails (overrides the script)")
}

func playLoop(rt *fabula.Runtime, plain bool) error {
	render := tui.NewRenderer(80)
	if plain {
		render = func(text string) (string, error) { return text + "\n", nil }
	}
	reader := bufio.NewReader(os.Stdin)

	for {
		view := rt.Render()

		fmt.Printf("\n== %s ==\n\n", view.Title)
		for _, p := range view.Paragraphs {
			out, err := render(p)
			if err != nil {
				out = p + "\n"
			}
			fmt.Print(out)
		}

		if view.Ended {
			fmt.Printf("\n%s\n", view.EndingText)
			return nil
		}

		// Menu numbers map to the visible choices; the runtime wants the
		// index within the full list, so keep both.
		type menuEntry struct {
			index  int
			choice domain.RenderChoice
		}
		var menu []menuEntry
		for i, c := range view.Choices {
			if !c.Enabled && !rt.ShowDisabled() {
				continue
			}
			menu = append(menu, menuEntry{index: i, choice: c})
		}

		fmt.Println()
		for n, entry := range menu {
			marker := " "
			if !entry.choice.Enabled {
				marker = "x"
			}
			fmt.Printf(" %d. [%s] %s\n", n+1, marker, entry.choice.Text)
		}

		fmt.Print("\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" {
			return nil
		}

		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(menu) {
			fmt.Println("Pick a number from the menu.")
			continue
		}

		if err := rt.Select(menu[n-1].index); err != nil {
			switch {
			case errors.Is(err, domain.ErrDisabledChoice):
				fmt.Println("That choice is not available right now.")
			default:
				fmt.Printf("Choice failed: %v\n", err)
			}
		}
	}
}
