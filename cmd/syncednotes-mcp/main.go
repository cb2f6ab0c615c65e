package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	mcpadapter "syncednotes/internal/adapters/mcp"
	"syncednotes/internal/adapters/settings"
	"syncednotes/internal/application"
	"syncednotes/internal/config"
	"syncednotes/internal/logging"
)

const instructions = `Notes are kept in a tree of folders and notes. Address a node by its
slash separated label path, e.g. Work/Meetings/standup. Call tree first to
see what exists.`

func main() {
	configFlag := flag.String("config", "", "config file (default "+config.DefaultPath()+")")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "syncednotes-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	// stdout carries the protocol
	logger, closer, err := logging.New(logging.Options{Level: cfg.Level(), Stderr: os.Stderr})
	if err != nil {
		return err
	}
	defer closer.Close()

	mcpServer := server.NewMCPServer(
		"syncednotes-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	fileStore := settings.NewFileStore(cfg.Settings.Path,
		settings.WithKey(cfg.Settings.Key),
		settings.WithLockTimeout(cfg.Settings.LockTimeout),
		settings.WithLogger(logger),
	)
	store := application.NewNoteStore(fileStore,
		application.WithLogger(logger),
		application.WithDebug(cfg.DebugMode),
		application.WithOnChange(mcpadapter.NotifyTreeChanged(mcpServer)),
	)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load notes from %s: %w", fileStore.Path(), err)
	}

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Settings.Autorefresh {
		watcher := settings.NewWatcher(fileStore.Path(), logger)
		g.Go(func() error {
			return watcher.Watch(gctx, func() {
				if err := store.Load(gctx); err != nil {
					logger.Warn("reload failed", slog.String("error", err.Error()))
				}
			})
		})
	}

	g.Go(func() error {
		defer cancel()
		stdio := server.NewStdioServer(mcpServer)
		stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
		logger.Info("serving on stdio", slog.String("settings", fileStore.Path()))
		err := stdio.Listen(gctx, os.Stdin, os.Stdout)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
