package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"syncednotes/internal/adapters/clipboard"
	"syncednotes/internal/adapters/editor"
	"syncednotes/internal/adapters/preview"
	"syncednotes/internal/adapters/settings"
	"syncednotes/internal/adapters/tui"
	"syncednotes/internal/ports"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the tree browser",
	Long: `Open a full screen tree browser with a preview pane.

Keys: arrows or hjkl to move and fold, e to edit, y to copy, r to reload,
p to toggle the preview, ? for help, q to quit. With settings.autorefresh
on, changes made elsewhere show up without reloading.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return browse(cmd.Context())
	},
}

func browse(ctx context.Context) error {
	deps := tui.Deps{
		Store:     GetStore(),
		Editor:    editor.NewRunner(editor.NewOpener(cfg.Editor), logger),
		Previewer: preview.NewRenderer("", 0),
		TempDir:   cfg.Notes.TempDir,
		Logger:    logger,
	}
	if cb := clipboard.New(); cb.Available() {
		deps.Clipboard = cb
	}

	var watcher ports.SettingsWatcher
	if cfg.Settings.Autorefresh {
		watcher = settings.NewWatcher(fileStore.Path(), logger)
	}
	return tui.Run(ctx, deps, watcher)
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
