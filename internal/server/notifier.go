package server

import "sync"

// Notifier fans reload events out to the /api/events streams. Each
// subscriber holds at most one pending event: a client that has not yet
// read the previous reload re-reads the database once, at the newest version.
type Notifier struct {
	mu      sync.RWMutex
	streams map[chan struct{}]struct{}
}

// NewNotifier creates a notifier with no subscribers.
func NewNotifier() *Notifier {
	return &Notifier{streams: make(map[chan struct{}]struct{})}
}

// Subscribe registers an event stream. Callers must Unsubscribe when the
// stream ends.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.streams[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes the stream and closes its channel.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.streams, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast signals a reload to every stream without blocking. Streams that
// already have a pending reload are skipped.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.streams {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Len returns the number of connected streams.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.streams)
}
