package docker

import "sync"

// broadcast fans a single producer's strings out to many subscribers. Each
// subscriber has its own buffered channel; a subscriber that falls behind
// has messages dropped for it rather than blocking the producer. Grounded
// on the teacher's DashboardWebSocket client-registry pattern, generalized
// from websocket connections to plain subscription handles.
type broadcast struct {
	mu          sync.Mutex
	subscribers map[chan string]struct{}
	closed      bool
}

func newBroadcast() *broadcast {
	return &broadcast{subscribers: make(map[chan string]struct{})}
}

// subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function. If the broadcast has already been closed, the
// returned channel is closed immediately so a subscriber that arrives after
// the producer stopped still observes termination rather than blocking
// forever.
func (b *broadcast) subscribe() (<-chan string, func()) {
	ch := make(chan string, 512)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}

	return ch, unsubscribe
}

// publish fans out to every current subscriber, dropping the message for
// any subscriber whose buffer is full.
func (b *broadcast) publish(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// close closes every current subscriber's channel and marks the broadcast
// closed, so subscribers observe producer termination as a closed channel
// instead of silence. Safe to call more than once.
func (b *broadcast) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = make(map[chan string]struct{})
}
