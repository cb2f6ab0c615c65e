package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"syncednotes/internal/adapters/settings"
	"syncednotes/internal/adapters/tui"
	"syncednotes/internal/application"
	"syncednotes/internal/application/commands"
	"syncednotes/internal/config"
	"syncednotes/internal/logging"
)

var (
	configPath string
	noInput    bool

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	fileStore *settings.FileStore
	store     *application.NoteStore
)

var rootCmd = &cobra.Command{
	Use:   "syncednotes",
	Short: "Manage notes kept in an editor settings file",
	Long: `syncednotes manages a tree of folders and notes stored as one JSON value
inside an editor settings file, so the notes travel with settings sync.

Without a subcommand it opens the tree browser. Commands that need a node
take a slash separated label path such as Work/Meetings/standup; when the
path is left out they ask for it with a picker.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return browse(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().BoolVar(&noInput, "no-input", false, "never prompt; every node must be given as a path")
}

// setup loads the config, opens the log and reads the notes
func setup(ctx context.Context) error {
	var err error
	cfg, err = config.Resolve(configPath)
	if err != nil {
		return err
	}

	logger, logCloser, err = logging.New(logging.Options{Level: cfg.Level()})
	if err != nil {
		return err
	}

	fileStore = settings.NewFileStore(cfg.Settings.Path,
		settings.WithKey(cfg.Settings.Key),
		settings.WithLockTimeout(cfg.Settings.LockTimeout),
		settings.WithLogger(logger),
	)
	store = application.NewNoteStore(fileStore,
		application.WithLogger(logger),
		application.WithDebug(cfg.DebugMode),
	)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load notes from %s: %w", fileStore.Path(), err)
	}
	return nil
}

// GetStore returns the loaded note store
func GetStore() *application.NoteStore {
	return store
}

// interaction returns how commands may ask the user for missing input.
// Prompting needs a terminal on both ends.
func interaction() commands.Interaction {
	ui := commands.Interaction{
		PickerOptions: []application.PickerOption{
			application.WithPreviewLength(cfg.Notes.PreviewLength),
			application.WithPickerLogger(logger),
		},
	}
	if !noInput && isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd()) {
		ui.Prompter = tui.NewPrompter()
	}
	return ui
}
