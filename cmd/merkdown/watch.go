package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var watchCommand = cli.Command{
	Name:         "watch",
	Aliases:      []string{"w"},
	Usage:        "Convert the markdown file again whenever it changes",
	ArgsUsage:    "<input.md>",
	Flags:        conversionFlags,
	OnUsageError: onUsageError,
	Action: func(ctx *cli.Context) error {
		opts, err := resolveOptions(ctx)
		if err != nil {
			return err
		}
		// Watch before the first conversion so edits made meanwhile are seen.
		watcher, err := watchFile(opts.input)
		if err != nil {
			return err
		}
		if err := convert(opts); err != nil {
			watcher.Close()
			return err
		}

		cctx, cancel := signalContext()
		defer cancel()
		log.WithField("input", opts.input).Info("watching for changes")
		return watcher.Run(cctx, func() {
			if err := convert(opts); err != nil {
				log.WithError(err).Error("conversion failed")
			}
		})
	},
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(c)
	}()
	return ctx, cancel
}

// fileWatcher reports changes of a single file. The parent directory is
// watched since many editors replace files instead of writing them in place.
type fileWatcher struct {
	target  string
	watcher *fsnotify.Watcher
}

// watchFile starts watching path. Events are queued from the moment it
// returns, Run delivers them.
func watchFile(path string) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, err
	}
	return &fileWatcher{target: target, watcher: watcher}, nil
}

func (w *fileWatcher) Close() error {
	return w.watcher.Close()
}

// Run calls onChange for every write, create or rename of the file until ctx
// is done, then closes the watcher.
func (w *fileWatcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != w.target {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.WithFields(log.Fields{"path": evt.Name, "op": evt.Op.String()}).Info("input changed")
			onChange()
		}
	}
}
