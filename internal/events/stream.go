// Package events merges key presses and heartbeat ticks into one ordered
// stream that the dashboard loop drains one event at a time.
//
// Each producer (key reader, ticker, fixture watcher) runs in its own
// goroutine and only ever writes into the stream's bounded channel. Keys are
// enqueued with backpressure and never dropped; ticks are best-effort and
// are skipped while another event is already pending.
package events

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// DefaultTickInterval is the heartbeat interval used when none is configured.
const DefaultTickInterval = 200 * time.Millisecond

// DefaultCapacity is the queue size used when a non-positive one is given.
const DefaultCapacity = 16

// ErrClosed is returned by Next once the stream has been closed.
var ErrClosed = errors.New("event stream closed")

// Kind distinguishes input events from ticks.
type Kind int

const (
	// KindInput is a key press.
	KindInput Kind = iota
	// KindTick is a timer or file-change heartbeat with no key.
	KindTick
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Key is a key name such as "q", "left", "right" or "ctrl+c".
type Key string

func (k Key) String() string {
	return string(k)
}

// Event is one item of the stream.
type Event struct {
	Kind Kind
	// Key is set for KindInput events only.
	Key Key
}

// Input returns a key press event.
func Input(key Key) Event {
	return Event{Kind: KindInput, Key: key}
}

// Tick returns a heartbeat event.
func Tick() Event {
	return Event{Kind: KindTick}
}

// KeySource yields key presses. ReadKey blocks until a key is available
// and must return promptly once ctx is done.
type KeySource interface {
	ReadKey(ctx context.Context) (Key, error)
}

// Stream is a bounded, ordered, non-restartable event queue.
type Stream struct {
	ctx    context.Context
	cancel context.CancelFunc
	events chan Event

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewStream creates a stream with the given queue capacity. The stream is
// closed when ctx is done or Close is called.
func NewStream(ctx context.Context, capacity int) *Stream {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	ctx, cancel := context.WithCancel(ctx)
	return &Stream{
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, capacity),
	}
}

// Next blocks until the next event is available. It returns ErrClosed after
// the stream is closed, and ctx.Err() if ctx is done first.
func (s *Stream) Next(ctx context.Context) (Event, error) {
	if s.ctx.Err() != nil {
		return Event{}, ErrClosed
	}
	select {
	case <-s.ctx.Done():
		return Event{}, ErrClosed
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case ev := <-s.events:
		// A close racing with the receive wins.
		if s.ctx.Err() != nil {
			return Event{}, ErrClosed
		}
		return ev, nil
	}
}

// StartKeys starts a producer that forwards every key read from src.
// The producer stops when src returns an error or the stream closes.
func (s *Stream) StartKeys(src KeySource) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			key, err := src.ReadKey(s.ctx)
			if err != nil {
				if s.ctx.Err() == nil {
					log.Printf("[events] key source stopped: %v", err)
				}
				return
			}
			if !s.emit(Input(key)) {
				return
			}
		}
	}()
}

// StartTicker starts a producer that offers a Tick every interval.
func (s *Stream) StartTicker(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.offer(Tick())
			}
		}
	}()
}

// Close stops every producer, waits for them to exit and makes Next return
// ErrClosed. It is safe to call more than once.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.wg.Wait()
	})
}

// emit enqueues ev, blocking while the queue is full. It reports false if
// the stream closed first.
func (s *Stream) emit(ev Event) bool {
	if s.ctx.Err() != nil {
		return false
	}
	select {
	case s.events <- ev:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// offer enqueues ev only if nothing is pending and there is room.
func (s *Stream) offer(ev Event) {
	if s.ctx.Err() != nil || len(s.events) > 0 {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}
