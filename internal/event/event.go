// Package event is a typed publish/subscribe channel. Listeners are attached
// under an id so a caller can swap or drop exactly the listener it owns.
package event

type listener[T any] struct {
	id string
	fn func(T)
}

// Channel delivers values of one kind to its listeners synchronously, in
// attach order. The zero value is ready to use.
type Channel[T any] struct {
	listeners []listener[T]
}

// Attach registers fn under id. A listener already attached under id is
// replaced in place and keeps its position.
func (c *Channel[T]) Attach(id string, fn func(T)) {
	for i := range c.listeners {
		if c.listeners[i].id == id {
			ls := append([]listener[T](nil), c.listeners...)
			ls[i].fn = fn
			c.listeners = ls
			return
		}
	}
	c.listeners = append(c.listeners, listener[T]{id: id, fn: fn})
}

// Detach removes the listener attached under id and reports whether there was
// one.
func (c *Channel[T]) Detach(id string) bool {
	for i := range c.listeners {
		if c.listeners[i].id == id {
			c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Notify calls every listener with v. Listeners attached or detached during
// delivery take effect from the next Notify.
func (c *Channel[T]) Notify(v T) {
	snapshot := c.listeners
	for _, l := range snapshot {
		l.fn(v)
	}
}

func (c *Channel[T]) Len() int { return len(c.listeners) }
