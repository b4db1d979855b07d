// Package poll keeps tracked orders fresh on a fixed interval. The source
// system polled without cancelling anything, so a slow early response could
// overwrite a newer one; here every fetch carries a generation number and a
// superseded response is discarded, and a watcher dies with its context.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ordering-console/models"
)

// FetchFunc fetches the current state of one tracked order.
type FetchFunc func(ctx context.Context) (models.Pedido, error)

type Watcher struct {
	fetch    FetchFunc
	interval time.Duration

	gen atomic.Uint64

	mu       sync.RWMutex
	applied  uint64
	latest   models.Pedido
	haveData bool
	lastErr  error
}

func NewWatcher(fetch FetchFunc, interval time.Duration) *Watcher {
	return &Watcher{fetch: fetch, interval: interval}
}

// Run polls until ctx is done or the order reaches a terminal state. Each tick
// fetches in its own goroutine so a slow backend cannot delay the next tick;
// generation numbering keeps the slow response from clobbering a newer one.
func (w *Watcher) Run(ctx context.Context) {
	w.Refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p, ok := w.Latest(); ok && p.Estado.IsTerminal() {
				return
			}
			go w.Refresh(ctx)
		}
	}
}

// Refresh performs one fetch and applies the result unless a later fetch
// already landed. A failed fetch leaves the last snapshot intact.
func (w *Watcher) Refresh(ctx context.Context) {
	gen := w.gen.Add(1)

	p, err := w.fetch(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen <= w.applied {
		return // superseded by a newer fetch
	}
	w.applied = gen
	if err != nil {
		w.lastErr = err
		return
	}
	w.lastErr = nil
	w.latest = p
	w.haveData = true
}

// Latest returns the newest applied snapshot, if any fetch has succeeded yet.
func (w *Watcher) Latest() (models.Pedido, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest, w.haveData
}

func (w *Watcher) Err() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}
