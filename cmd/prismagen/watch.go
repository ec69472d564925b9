package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b4s36t4/amplication/compiler/load"
)

// DefaultDebounce is the quiet period after the last change before a
// rebuild starts. Editors often emit several events per save.
const DefaultDebounce = 200 * time.Millisecond

// watchCmd regenerates the output whenever the input changes.
func watchCmd(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Regenerate the output on every change to the input",
		Example: `  prismagen watch -i ./entities -o ./prisma --enums`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Output == "" {
				return errors.New("watch requires an output directory")
			}
			ctx := cmd.Context()
			rebuild := func(ctx context.Context) error {
				return a.emit(ctx, cmd.OutOrStdout())
			}
			if err := rebuild(ctx); err != nil {
				a.logger.Error("build failed", zap.Error(err))
			}
			a.logger.Info("watching", zap.String("dir", a.cfg.Input))
			return watch(ctx, a.cfg.Input, debounce, a.logger, rebuild)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", DefaultDebounce, "Quiet period before rebuilding")
	return cmd
}

// watch calls rebuild after changes to entity files in dir, until ctx is
// done. Rebuild errors are logged and do not stop the watch.
func watch(ctx context.Context, dir string, debounce time.Duration, logger *zap.Logger, rebuild func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			logger.Debug("change detected", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			start := time.Now()
			if err := rebuild(ctx); err != nil {
				logger.Error("build failed", zap.Error(err))
				continue
			}
			logger.Info("rebuilt", zap.Duration("took", time.Since(start)))
		}
	}
}

// relevant reports whether event touches an entity definition file.
func relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	_, ok := load.FormatOf(event.Name)
	return ok
}
