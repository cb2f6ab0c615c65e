package cmd

import (
	"github.com/spf13/cobra"

	"syncednotes/internal/application/commands"
)

var deleteYes bool

var deleteNoteCmd = &cobra.Command{
	Use:   "delete-note [note]",
	Short: "Delete a note",
	Long: `Delete a note.

Warning: This operation cannot be undone.

Example:
  syncednotes delete-note Work/todo`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, args, commands.NewDeleteNoteCommand(GetStore(), interaction()))
	},
}

var deleteFolderCmd = &cobra.Command{
	Use:   "delete-folder [folder]",
	Short: "Delete a folder and its contents",
	Long: `Delete a folder with every folder and note below it.

Warning: This operation cannot be undone. A folder that is not empty is
only deleted after confirmation, or with --yes.

Examples:
  syncednotes delete-folder Empty
  syncednotes delete-folder Work --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, args, commands.NewDeleteFolderCommand(GetStore(), interaction()))
	},
}

func runDelete(cmd *cobra.Command, args []string, deleteCmd *commands.DeleteCommand) error {
	target, err := nodeArg(args, 0)
	if err != nil {
		return err
	}

	deleteCmd.Target = target
	deleteCmd.Confirmed = deleteYes
	result, err := deleteCmd.Execute(cmd.Context())
	if err != nil {
		return err
	}
	report(cmd.OutOrStdout(), result)
	return nil
}

func init() {
	rootCmd.AddCommand(deleteNoteCmd)
	rootCmd.AddCommand(deleteFolderCmd)

	deleteFolderCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete a non-empty folder without asking")
}
