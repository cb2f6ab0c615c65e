package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"syncednotes/internal/application"
	"syncednotes/internal/ports"
)

const defaultSettle = 50 * time.Millisecond

// Runner drives an edit session: it runs the editor on the scratch file and
// saves the note each time the file is written. It implements
// commands.Editor.
type Runner struct {
	opener ports.EditorOpener
	settle time.Duration
	logger *slog.Logger
}

// NewRunner creates a runner that opens files with opener
func NewRunner(opener ports.EditorOpener, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{opener: opener, settle: defaultSettle, logger: logger}
}

// WithSettle sets how long writes must settle before a save
func (r *Runner) WithSettle(d time.Duration) *Runner {
	r.settle = d
	return r
}

// Edit runs the editor and watches the scratch file until the editor exits
// or ctx is done. Saves that fail are logged and the session keeps going.
func (r *Runner) Edit(ctx context.Context, session *application.EditSession) error {
	cmd, err := r.opener.Command(session.Path())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.watch(gctx, session, ready)
	})
	g.Go(func() error {
		select {
		case <-ready:
		case <-gctx.Done():
			return nil
		}
		r.logger.Info("editor: started", slog.String("path", session.Path()))
		defer cancel()
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to start editor: %w", err)
		}
		done := make(chan error, 1)
		go func() { done <- cmd.Wait() }()
		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("editor exited: %w", err)
			}
			r.logger.Info("editor: exited", slog.String("path", session.Path()))
			return nil
		case <-gctx.Done():
			_ = cmd.Process.Kill()
			<-done
			return nil
		}
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Runner) watch(ctx context.Context, session *application.EditSession, ready chan<- struct{}) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	path := filepath.Clean(session.Path())
	// Editors that save by renaming replace the file, so watch the directory
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	if ready != nil {
		close(ready)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-fire:
			fire = nil
			saved, err := session.Save(ctx)
			switch {
			case err != nil:
				r.logger.Error("editor: save failed", slog.String("path", path), slog.String("error", err.Error()))
			case saved:
				r.logger.Debug("editor: note saved", slog.String("path", path))
			}

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(r.settle)
			} else {
				timer.Reset(r.settle)
			}
			fire = timer.C

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("editor: watch error", slog.String("error", watchErr.Error()))
		}
	}
}
