package cmd

import (
	"github.com/spf13/cobra"

	"syncednotes/internal/application/commands"
)

var (
	noteLabel   string
	noteContent string
	folderLabel string
)

var addNoteCmd = &cobra.Command{
	Use:   "add-note [folder]",
	Short: "Add a note",
	Long: `Add a note at the end of a folder. Use / for the root level.

Missing input is asked for interactively: the folder with a picker, the
name and the text with input prompts.

Examples:
  syncednotes add-note Work --label todo --content "- ship it"
  syncednotes add-note / -l scratch -c ""
  syncednotes add-note`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, err := folderArg(args, 0)
		if err != nil {
			return err
		}

		addCmd := commands.NewAddNoteCommand(GetStore(), interaction())
		addCmd.Parent = parent
		addCmd.Label = noteLabel
		if cmd.Flags().Changed("content") {
			addCmd.Content = &noteContent
		}
		result, err := addCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), result)
		return nil
	},
}

var addFolderCmd = &cobra.Command{
	Use:   "add-folder [folder]",
	Short: "Add a folder",
	Long: `Add an empty folder at the end of a folder. Use / for the root level.

Examples:
  syncednotes add-folder / --label Work
  syncednotes add-folder Work -l Meetings`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, err := folderArg(args, 0)
		if err != nil {
			return err
		}

		addCmd := commands.NewAddFolderCommand(GetStore(), interaction())
		addCmd.Parent = parent
		addCmd.Label = folderLabel
		result, err := addCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addNoteCmd)
	rootCmd.AddCommand(addFolderCmd)

	addNoteCmd.Flags().StringVarP(&noteLabel, "label", "l", "", "note name")
	addNoteCmd.Flags().StringVarP(&noteContent, "content", "c", "", "note text")
	addFolderCmd.Flags().StringVarP(&folderLabel, "label", "l", "", "folder name")
}
