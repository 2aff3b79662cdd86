// Package events provides small generic pub/sub primitives used to
// decouple the session engine, the model and the UI layers.
package events

import "sync"

// registry is the shared core behind both event flavors: a set of
// delivery functions keyed by registration ID, plus optional memory of
// the last published value for replay to late listeners.
type registry[T any] struct {
	mu          sync.RWMutex
	deliver     map[uint64]func(T)
	nextID      uint64
	replayLast  bool
	lastEvent   *T
	hasNotified bool
}

func newRegistry[T any](replayLast bool) *registry[T] {
	return &registry[T]{
		deliver:    make(map[uint64]func(T)),
		replayLast: replayLast,
	}
}

// add registers a delivery function and returns its deregistration
// function plus the value to replay, if any. Replay happens outside the
// lock so a delivery function may call back into the registry.
func (r *registry[T]) add(fn func(T)) (func(), *T) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.deliver[id] = fn

	var replay *T
	if r.replayLast && r.hasNotified && r.lastEvent != nil {
		v := *r.lastEvent
		replay = &v
	}
	r.mu.Unlock()

	deregister := func() {
		r.mu.Lock()
		delete(r.deliver, id)
		r.mu.Unlock()
	}
	return deregister, replay
}

// notify records the value (when replay is enabled) and invokes every
// delivery function outside the lock.
func (r *registry[T]) notify(value T) {
	r.mu.Lock()
	if r.replayLast {
		v := value
		r.lastEvent = &v
		r.hasNotified = true
	}
	fns := make([]func(T), 0, len(r.deliver))
	for _, fn := range r.deliver {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

func (r *registry[T]) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.deliver)
}
