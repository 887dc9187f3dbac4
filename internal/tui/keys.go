package tui

import (
	"context"
	"sync"

	"github.com/ShayCichocki/trellis/internal/events"
)

// keyQueue hands key presses from the bubbletea loop to the dashboard.
// push never blocks and pop returns keys in arrival order, so nothing is
// lost while the dashboard is busy fetching.
type keyQueue struct {
	mu    sync.Mutex
	keys  []events.Key
	ready chan struct{}
}

func newKeyQueue() *keyQueue {
	return &keyQueue{ready: make(chan struct{}, 1)}
}

func (q *keyQueue) push(key events.Key) {
	q.mu.Lock()
	q.keys = append(q.keys, key)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// pop waits for the next key. Queued keys are still returned after done is
// closed; ok is false once the queue is drained and done is closed, or when
// ctx ends first.
func (q *keyQueue) pop(ctx context.Context, done <-chan struct{}) (key events.Key, ok bool, err error) {
	for {
		q.mu.Lock()
		if len(q.keys) > 0 {
			key = q.keys[0]
			q.keys[0] = ""
			q.keys = q.keys[1:]
			q.mu.Unlock()
			return key, true, nil
		}
		q.mu.Unlock()

		select {
		case <-q.ready:
		case <-done:
			// A push may have landed just before done closed.
			q.mu.Lock()
			pending := len(q.keys) > 0
			q.mu.Unlock()
			if !pending {
				return "", false, nil
			}
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}
}
