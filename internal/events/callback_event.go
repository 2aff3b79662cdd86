package events

// CallbackEvent is a pub/sub event whose listeners are plain functions,
// invoked synchronously on the publisher's goroutine.
type CallbackEvent[T any] struct {
	reg *registry[T]
}

// NewCallbackEvent creates a CallbackEvent. With replayLast set, each
// new listener is invoked immediately with the most recent Notify value.
func NewCallbackEvent[T any](replayLast bool) *CallbackEvent[T] {
	return &CallbackEvent[T]{reg: newRegistry[T](replayLast)}
}

// Listen registers a callback and returns its deregistration function.
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("callback cannot be nil")
	}
	deregister, replay := e.reg.add(callback)
	if replay != nil {
		callback(*replay)
	}
	return deregister
}

// Notify invokes every registered callback with value.
func (e *CallbackEvent[T]) Notify(value T) {
	e.reg.notify(value)
}

// ListenerCount reports the number of registered listeners.
func (e *CallbackEvent[T]) ListenerCount() int {
	return e.reg.count()
}
