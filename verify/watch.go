package verify

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-runs scenario files when they change on disk. Content hashes
// suppress duplicate runs: editors commonly emit several write events per
// save, and only an actual content change triggers a re-run.
type Watcher struct {
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	hashes  map[string]string
	// OnReport receives the report of every re-run. Must be set before
	// Watch is called.
	OnReport func(*Report)
}

// NewWatcher creates a watcher over the given paths. Directories are
// registered recursively.
func NewWatcher(logger *zap.Logger, paths []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{logger: logger, watcher: fw, hashes: make(map[string]string)}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			if err := fw.Add(filepath.Dir(path)); err != nil {
				fw.Close()
				return nil, err
			}
			continue
		}
		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return fw.Add(p)
			}
			return nil
		})
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return w, nil
}

// Watch blocks, re-running changed scenario files until the context is
// cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if !hasScenarioExtension(event.Name) {
		return
	}
	if !w.contentChanged(event.Name) {
		return
	}

	rep, err := Run(event.Name)
	if err != nil {
		w.logger.Error("Error re-running scenario", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.logger.Info("Scenario re-run",
		zap.String("file", event.Name),
		zap.Bool("succeeded", rep.Succeeded()))
	if w.OnReport != nil {
		w.OnReport(rep)
	}
}

// contentChanged hashes the file and reports whether the content differs
// from the last seen hash, updating it.
func (w *Watcher) contentChanged(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	sum := fmt.Sprintf("%x", md5.Sum(data))
	if w.hashes[path] == sum {
		return false
	}
	w.hashes[path] = sum
	return true
}
