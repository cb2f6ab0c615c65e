package cmd

import (
	"github.com/spf13/cobra"

	"syncednotes/internal/application/commands"
)

var moveNoteCmd = &cobra.Command{
	Use:   "move-note [note] [folder]",
	Short: "Move a note to another folder",
	Long: `Move a note to the end of a folder. Use / for the root level.

Examples:
  syncednotes move-note Work/todo Archive
  syncednotes move-note Work/todo /`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMove(cmd, args, commands.NewMoveNoteCommand(GetStore(), interaction()))
	},
}

var moveFolderCmd = &cobra.Command{
	Use:   "move-folder [folder] [folder]",
	Short: "Move a folder to another folder",
	Long: `Move a folder with everything in it to the end of another folder.
Use / for the root level. A folder cannot move into itself or below.

Example:
  syncednotes move-folder Work/Meetings Archive`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMove(cmd, args, commands.NewMoveFolderCommand(GetStore(), interaction()))
	},
}

func runMove(cmd *cobra.Command, args []string, moveCmd *commands.MoveCommand) error {
	source, err := nodeArg(args, 0)
	if err != nil {
		return err
	}
	target, err := folderArg(args, 1)
	if err != nil {
		return err
	}

	moveCmd.Source = source
	moveCmd.Target = target
	result, err := moveCmd.Execute(cmd.Context())
	if err != nil {
		return err
	}
	report(cmd.OutOrStdout(), result)
	return nil
}

func init() {
	rootCmd.AddCommand(moveNoteCmd)
	rootCmd.AddCommand(moveFolderCmd)
}
