package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/maildeck/internal/core/domain"
	"github.com/custodia-labs/maildeck/internal/logger"
)

// reloadInterval caps how often external file changes trigger a reload.
// Editors often emit several write events per save.
const reloadInterval = 250 * time.Millisecond

// Watcher reloads a file-backed config service when its backing file
// changes on disk, and notifies the service's observers of any keys
// whose values changed.
type Watcher struct {
	service *ConfigService
	limiter *rate.Limiter
}

// NewWatcher creates a watcher over the service's backing store.
func NewWatcher(service *ConfigService) *Watcher {
	return &Watcher{
		service: service,
		limiter: rate.NewLimiter(rate.Every(reloadInterval), 1),
	}
}

// Run watches the backing file until the context is cancelled. Only
// TOML-backed stores are watchable: memory stores have no file, and
// SQLite in WAL mode lands external writes in the -wal file, so the
// database file itself rarely emits events.
func (w *Watcher) Run(ctx context.Context) error {
	path := w.service.store.Path()
	if filepath.Ext(path) != ".toml" {
		return fmt.Errorf("store %s is not watchable: %w", path, domain.ErrInvalidInput)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	// Watch the parent directory: editors typically replace the file,
	// which would invalidate a watch on the file itself.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	logger.Debug("watching config file %s", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.limiter.Allow() {
				continue
			}
			w.reload()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}

// reload re-reads the backing store and fires change events for every
// key whose entry differs from the in-memory state.
func (w *Watcher) reload() {
	before := w.snapshot()

	if err := w.service.store.Load(); err != nil {
		logger.Warn("reloading config: %v", err)
		return
	}

	// A truncated or hand-edited file may have lost baseline keys.
	if err := w.service.seedBaseline(); err != nil {
		logger.Warn("reseeding baseline: %v", err)
	}

	after := w.snapshot()

	for key, entry := range after {
		if old, ok := before[key]; ok && old.Equal(entry) {
			continue
		}
		w.service.notify(domain.ChangeEvent{
			ID:    uuid.New().String(),
			Type:  domain.ChangeSet,
			Key:   key,
			Entry: entry,
		})
	}
	for key := range before {
		if _, ok := after[key]; ok {
			continue
		}
		w.service.notify(domain.ChangeEvent{
			ID:   uuid.New().String(),
			Type: domain.ChangeDeleted,
			Key:  key,
		})
	}

	logger.Debug("config reloaded from %s", w.service.store.Path())
}

// snapshot captures the store's current entries.
func (w *Watcher) snapshot() map[string]domain.Entry {
	entries := make(map[string]domain.Entry)
	for _, key := range w.service.store.Keys() {
		if entry, ok := w.service.store.Get(key); ok {
			entries[key] = entry
		}
	}
	return entries
}
