package preview

import "sync"

// Notifier fans change pings out to every connected preview page.
// Listeners receive an empty struct when the news directory changed and
// should re-render; the ping carries no payload because the page always
// re-reads the directory anyway.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives pings when the news
// directory changes. The caller must call Unsubscribe when done to
// prevent goroutine leaks.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast sends a ping to all listeners.
// Non-blocking: a listener with a full buffer is mid-reload already and
// will pick up the change on its next render.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
