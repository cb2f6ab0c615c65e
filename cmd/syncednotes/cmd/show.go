package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"syncednotes/internal/adapters/clipboard"
	"syncednotes/internal/adapters/preview"
	"syncednotes/internal/application/commands"
	"syncednotes/internal/ports"
)

var (
	showRaw   bool
	showWidth int
)

var showCmd = &cobra.Command{
	Use:     "show [note]",
	Aliases: []string{"cat"},
	Short:   "Show a note",
	Long: `Decode a note and print it. On a terminal the text is rendered as
markdown; --raw prints it as stored.

Examples:
  syncednotes show Work/Meetings/standup
  syncednotes show readme --raw`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := nodeArg(args, 0)
		if err != nil {
			return err
		}

		var renderer ports.Previewer
		if !showRaw && isatty.IsTerminal(os.Stdout.Fd()) {
			renderer = preview.NewRenderer("", showWidth)
		}

		showCmd := commands.NewShowNoteCommand(GetStore(), interaction(), renderer)
		showCmd.Note = note
		result, err := showCmd.Execute(cmd.Context())
		if err != nil || result == nil {
			return err
		}

		if result.Rendered != "" {
			fmt.Fprint(cmd.OutOrStdout(), result.Rendered)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		return nil
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy [note]",
	Short: "Copy a note to the clipboard",
	Long: `Decode a note and put its text on the system clipboard.

Example:
  syncednotes copy Work/todo`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := nodeArg(args, 0)
		if err != nil {
			return err
		}

		copyCmd := commands.NewCopyNoteCommand(GetStore(), interaction(), clipboard.New())
		copyCmd.Note = note
		result, err := copyCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(copyCmd)

	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print the text without rendering")
	showCmd.Flags().IntVar(&showWidth, "width", 80, "wrap rendered text at this width")
}
