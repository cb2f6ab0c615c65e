package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"syncednotes/internal/application/commands"
	"syncednotes/internal/domain"
)

var (
	treeDepth   int
	treePreview bool
	searchLimit int
)

var treeCmd = &cobra.Command{
	Use:   "tree [folder]",
	Short: "Display the note tree",
	Long: `Display all folders and notes in order, or only those below a folder.

Examples:
  syncednotes tree
  syncednotes tree Work --depth 1
  syncednotes tree --preview`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := nodeArg(args, 0)
		if err != nil {
			return err
		}

		listCmd := commands.NewTreeCommand(GetStore())
		listCmd.Root = root
		listCmd.MaxDepth = treeDepth
		if treePreview {
			listCmd.PreviewLength = cfg.Notes.PreviewLength
		}
		lines, err := listCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, l := range lines {
			fmt.Fprint(out, strings.Repeat("  ", l.Depth))
			switch {
			case l.Kind == domain.KindFolder:
				fmt.Fprintf(out, "%s/", l.Label)
			case l.Unreadable:
				fmt.Fprintf(out, "%s  (unreadable)", l.Label)
			case l.Preview != "":
				fmt.Fprintf(out, "%s  %s", l.Label, l.Preview)
			default:
				fmt.Fprint(out, l.Label)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search notes and folders",
	Long: `Fuzzy search note and folder names, their paths and the note text.
Results are sorted by score, best first.

Example:
  syncednotes search standup`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		searchCmd := commands.NewSearchCommand(GetStore(), strings.Join(args, " "))
		searchCmd.Limit = searchLimit
		results, err := searchCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found.")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(out, "%-6s  %s", r.Kind, r.Path)
			if r.Snippet != "" {
				fmt.Fprintf(out, "  %s", r.Snippet)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload the notes and report what was read",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewRefreshCommand(GetStore()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(refreshCmd)

	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 0, "maximum depth, 0 for no limit")
	treeCmd.Flags().BoolVarP(&treePreview, "preview", "p", false, "show the start of each note")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results, 0 for no limit")
}
