package events

// ChannelEvent is a pub/sub event whose listeners are channels. Sends
// are non-blocking: a listener whose channel is full misses that value
// rather than stalling the publisher.
type ChannelEvent[T any] struct {
	reg *registry[T]
}

// NewChannelEvent creates a ChannelEvent. With replayLast set, the most
// recent Notify value is delivered to each new listener on Listen, so
// late subscribers start from the current state instead of waiting for
// the next publish.
func NewChannelEvent[T any](replayLast bool) *ChannelEvent[T] {
	return &ChannelEvent[T]{reg: newRegistry[T](replayLast)}
}

// Listen registers a channel and returns its deregistration function.
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}
	send := func(v T) {
		select {
		case ch <- v:
		default:
			// listener is full, drop this value for it
		}
	}
	deregister, replay := e.reg.add(send)
	if replay != nil {
		send(*replay)
	}
	return deregister
}

// Notify sends value to every registered channel without blocking.
func (e *ChannelEvent[T]) Notify(value T) {
	e.reg.notify(value)
}

// ListenerCount reports the number of registered listeners.
func (e *ChannelEvent[T]) ListenerCount() int {
	return e.reg.count()
}
