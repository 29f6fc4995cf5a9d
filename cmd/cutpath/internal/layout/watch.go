package layout

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/recera/cutpath/pkg/graph"
)

// Debounce is how long the file must stay quiet before it is re-read.
const Debounce = 100 * time.Millisecond

// Watch calls fn with the freshly loaded layout every time path changes,
// until ctx is done. The parent directory is watched so editors that save
// by renaming are still seen.
func Watch(ctx context.Context, path string, fn func(graph.Snapshot, error)) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	debounce := time.NewTimer(0)
	<-debounce.C
	pending := false

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending = true
			debounce.Reset(Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[layout] watcher error: %v", err)

		case <-debounce.C:
			if !pending {
				continue
			}
			pending = false
			log.Printf("[layout] %s changed", filepath.Base(path))
			fn(Load(path))
		}
	}
}
