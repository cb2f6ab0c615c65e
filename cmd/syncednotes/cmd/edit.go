package cmd

import (
	"github.com/spf13/cobra"

	"syncednotes/internal/adapters/editor"
	"syncednotes/internal/application"
	"syncednotes/internal/application/commands"
)

var editCmd = &cobra.Command{
	Use:   "edit [note]",
	Short: "Edit a note in your editor",
	Long: `Open a note in an external editor. Every write of the scratch file is
saved back to the settings, and the file is removed when the editor exits.

The editor is the config "editor" key, then $VISUAL, then $EDITOR.

Example:
  EDITOR=nano syncednotes edit Work/todo`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := nodeArg(args, 0)
		if err != nil {
			return err
		}

		runner := editor.NewRunner(editor.NewOpener(cfg.Editor), logger)
		editCmd := commands.NewEditNoteCommand(GetStore(), interaction(), runner)
		editCmd.Note = note
		editCmd.TempDir = cfg.Notes.TempDir
		editCmd.SessionOptions = []application.EditOption{application.WithEditLogger(logger)}
		result, err := editCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), &result.Result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
