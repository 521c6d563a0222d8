package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// debounceDelay batches the events of one save into a single render.
const debounceDelay = 200 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	var out, pkg string
	cmd := &cobra.Command{
		Use:   "watch FILE...",
		Short: "Render the declared classes and render again on every change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := a.generator(out, pkg)
			if err != nil {
				return err
			}
			renderAll := func() {
				if err := a.render(ctx, cmd, g, args); err != nil && !errors.Is(err, errFailed) {
					a.logger.Error("render failed", "error", err)
				}
			}
			renderAll()

			w, files, err := setupWatcher(args)
			if err != nil {
				return err
			}
			defer w.Close()
			a.logger.Info("watching for changes", "files", len(files))
			return watchLoop(ctx, a.logger, w, files, debounceDelay, renderAll)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", a.settings.Out, "output directory")
	cmd.Flags().StringVarP(&pkg, "package", "p", a.settings.Package, "package name (defaults to the output directory name)")
	return cmd
}

// setupWatcher watches the directories of the given files. Directories are
// watched instead of files so editors that replace files on save are seen.
func setupWatcher(paths []string) (*fsnotify.Watcher, map[string]bool, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create file watcher: %w", err)
	}
	files := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, nil, err
		}
		files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return w, files, nil
}

// watchLoop calls fn once per burst of changes to the watched files, until
// ctx is done.
func watchLoop(ctx context.Context, log *slog.Logger, w *fsnotify.Watcher, files map[string]bool, delay time.Duration, fn func()) error {
	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			log.Debug("file changed", "path", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.AfterFunc(delay, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(delay)
			}
		case <-fire:
			fn()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "error", err)
		}
	}
}
