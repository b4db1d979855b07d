package poll

import (
	"context"
	"sync"
	"time"
)

// Registry manages one Watcher per tracking token. Watchers start on first
// use, share the registry's root context, and are reaped after sitting idle.
type Registry struct {
	root     context.Context
	fetchFor func(token string) FetchFunc
	interval time.Duration
	idleTTL  time.Duration

	mu       sync.Mutex
	watchers map[string]*entry
}

type entry struct {
	watcher  *Watcher
	cancel   context.CancelFunc
	lastSeen time.Time
}

func NewRegistry(ctx context.Context, fetchFor func(string) FetchFunc, interval, idleTTL time.Duration) *Registry {
	return &Registry{
		root:     ctx,
		fetchFor: fetchFor,
		interval: interval,
		idleTTL:  idleTTL,
		watchers: make(map[string]*entry),
	}
}

// Track returns the watcher for a token, starting it if needed. The first
// caller pays one synchronous fetch inside Run so a snapshot exists quickly.
func (r *Registry) Track(token string) *Watcher {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.watchers[token]; ok {
		e.lastSeen = time.Now()
		return e.watcher
	}

	ctx, cancel := context.WithCancel(r.root)
	w := NewWatcher(r.fetchFor(token), r.interval)
	r.watchers[token] = &entry{watcher: w, cancel: cancel, lastSeen: time.Now()}
	go w.Run(ctx)
	return w
}

// Sweep cancels and drops watchers nobody has asked about within idleTTL.
// Run it on a timer alongside the server.
func (r *Registry) Sweep(ctx context.Context) {
	ticker := time.NewTicker(r.idleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-r.idleTTL)
			r.mu.Lock()
			for token, e := range r.watchers {
				if e.lastSeen.Before(cutoff) {
					e.cancel()
					delete(r.watchers, token)
				}
			}
			r.mu.Unlock()
		}
	}
}

func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, e := range r.watchers {
		e.cancel()
		delete(r.watchers, token)
	}
}
