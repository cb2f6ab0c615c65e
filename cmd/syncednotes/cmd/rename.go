package cmd

import (
	"github.com/spf13/cobra"

	"syncednotes/internal/application/commands"
)

var renameLabel string

var renameNoteCmd = &cobra.Command{
	Use:   "rename-note [note]",
	Short: "Rename a note",
	Long: `Rename a note. Without --label the new name is asked for, prefilled
with the current one.

Example:
  syncednotes rename-note Work/todo --label done`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRename(cmd, args, commands.NewRenameNoteCommand(GetStore(), interaction()))
	},
}

var renameFolderCmd = &cobra.Command{
	Use:   "rename-folder [folder]",
	Short: "Rename a folder",
	Long: `Rename a folder. Without --label the new name is asked for, prefilled
with the current one.

Example:
  syncednotes rename-folder Work --label Job`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRename(cmd, args, commands.NewRenameFolderCommand(GetStore(), interaction()))
	},
}

func runRename(cmd *cobra.Command, args []string, renameCmd *commands.RenameCommand) error {
	target, err := nodeArg(args, 0)
	if err != nil {
		return err
	}

	renameCmd.Target = target
	renameCmd.Label = renameLabel
	result, err := renameCmd.Execute(cmd.Context())
	if err != nil {
		return err
	}
	report(cmd.OutOrStdout(), result)
	return nil
}

func init() {
	rootCmd.AddCommand(renameNoteCmd)
	rootCmd.AddCommand(renameFolderCmd)

	for _, c := range []*cobra.Command{renameNoteCmd, renameFolderCmd} {
		c.Flags().StringVarP(&renameLabel, "label", "l", "", "new name")
	}
}
