package loader

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"
)

// Watch calls onChange with the absolute paths of the files that changed
// each time one or more of filenames is written, replaced or removed.
// Events are debounced by WatchDelay, since editors often save a file in
// several steps. onChange runs on the calling goroutine, never concurrently
// with itself.
//
// Watch blocks until ctx is cancelled and then returns nil. It only returns
// an error if the files cannot be watched at all.
func (l *Loader) Watch(ctx context.Context, filenames []string, onChange func(changed []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool, len(filenames))
	for _, filename := range filenames {
		abs, err := filepath.Abs(filename)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", filename, err)
		}
		if err := watcher.Add(abs); err != nil {
			return fmt.Errorf("failed to watch %s: %w", filename, err)
		}
		watched[abs] = true
	}

	delay := l.WatchDelay
	if delay <= 0 {
		delay = DefaultWatchDelay
	}

	debounce := time.NewTimer(delay)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	var fire <-chan time.Time
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Remove/Rename are common in atomic saves
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			name := filepath.Clean(event.Name)
			if !watched[name] {
				continue
			}
			pending[name] = true

			debounce.Reset(delay)
			fire = debounce.C

		case <-fire:
			fire = nil

			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
				// Re-add to catch files that were replaced rather than written
				if err := watcher.Add(name); err != nil {
					log.Printf("Warning: failed to watch %s: %v", name, err)
				}
			}
			clear(pending)
			slices.Sort(changed)

			onChange(changed)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}
