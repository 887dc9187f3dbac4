// Package dashboard drives the trellis screen: it builds a frame from the
// navigation state and the data source, hands it to a renderer, then waits
// for exactly one event and applies it.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"golang.org/x/sync/errgroup"

	"github.com/ShayCichocki/trellis/internal/events"
	"github.com/ShayCichocki/trellis/internal/navigation"
	"github.com/ShayCichocki/trellis/internal/source"
	"github.com/ShayCichocki/trellis/pkg/models"
)

// ErrRendererFailure wraps any error returned by a Renderer.
var ErrRendererFailure = errors.New("renderer failure")

// Renderer paints a frame.
type Renderer interface {
	Draw(frame Frame) error
}

// EventSource yields the next event, blocking until one is available.
type EventSource interface {
	Next(ctx context.Context) (events.Event, error)
}

// Options configures a Loop.
type Options struct {
	// AbortOnSourceError ends the loop on the first column or card fetch
	// failure. When false the affected pane is drawn empty with the error.
	AbortOnSourceError bool
	// FetchConcurrency is how many card lists are fetched in parallel.
	// Values below 2 fetch sequentially.
	FetchConcurrency int
	// KeyMap overrides DefaultKeyMap when non-nil.
	KeyMap *KeyMap
}

// Loop is the single-threaded redraw/dispatch driver. It owns the
// navigation state; nothing else may mutate it while Run is active.
type Loop struct {
	nav      *navigation.State
	src      source.Source
	renderer Renderer
	events   EventSource
	keys     KeyMap
	opts     Options
}

// NewLoop creates a Loop.
func NewLoop(opts Options, nav *navigation.State, src source.Source, renderer Renderer, ev EventSource) *Loop {
	keys := DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}
	return &Loop{
		nav:      nav,
		src:      src,
		renderer: renderer,
		events:   ev,
		keys:     keys,
		opts:     opts,
	}
}

// Run redraws and dispatches until the quit key is pressed, the event
// stream closes, or a fatal error occurs. Quitting returns nil.
func (l *Loop) Run(ctx context.Context) error {
	for {
		frame, err := l.BuildFrame(ctx)
		if err != nil {
			return fmt.Errorf("building frame: %w", err)
		}

		if err := l.renderer.Draw(frame); err != nil {
			return fmt.Errorf("%w: %w", ErrRendererFailure, err)
		}

		ev, err := l.events.Next(ctx)
		if err != nil {
			if errors.Is(err, events.ErrClosed) {
				log.Printf("[dashboard] event stream closed, stopping")
				return nil
			}
			return fmt.Errorf("waiting for input: %w", err)
		}

		if l.Dispatch(ev) {
			log.Printf("[dashboard] quit requested")
			return nil
		}
	}
}

// Dispatch applies one event to the navigation state and reports whether
// the loop should stop. Ticks and unbound keys change nothing.
func (l *Loop) Dispatch(ev events.Event) bool {
	if ev.Kind != events.KindInput {
		return false
	}

	switch {
	case key.Matches(ev.Key, l.keys.Quit):
		return true
	case key.Matches(ev.Key, l.keys.Next):
		l.nav.Next()
		log.Printf("[dashboard] selected board %d/%d", l.nav.Index()+1, l.nav.Len())
	case key.Matches(ev.Key, l.keys.Previous):
		l.nav.Previous()
		log.Printf("[dashboard] selected board %d/%d", l.nav.Index()+1, l.nav.Len())
	}
	return false
}

// BuildFrame fetches the columns and cards of the selected board and
// describes the screen. All fetches for a frame happen inside this call.
// An error is only returned when AbortOnSourceError is set.
func (l *Loop) BuildFrame(ctx context.Context) (Frame, error) {
	boards := l.nav.Boards()
	frame := Frame{Tabs: make([]Tab, len(boards))}
	for i, b := range boards {
		frame.Tabs[i] = Tab{Title: b.Name, Active: i == l.nav.Index()}
	}

	if l.nav.Empty() {
		return frame, nil
	}
	current, err := l.nav.Current()
	if err != nil {
		return Frame{}, err
	}

	pane, err := l.buildBoard(ctx, current)
	if err != nil {
		return Frame{}, err
	}
	frame.Board = pane
	return frame, nil
}

func (l *Loop) buildBoard(ctx context.Context, board models.Board) (*BoardPane, error) {
	pane := &BoardPane{Title: board.Name}

	cols, err := l.src.ListColumns(ctx, board.ID)
	if err != nil {
		if l.opts.AbortOnSourceError {
			return nil, fmt.Errorf("board %s: %w", board.ID, err)
		}
		log.Printf("[dashboard] cannot list columns of board %s: %v", board.ID, err)
		pane.Err = err.Error()
		return pane, nil
	}

	pane.Columns = make([]ColumnPane, len(cols))
	for i, col := range cols {
		pane.Columns[i].Title = col.Name
	}

	if l.opts.FetchConcurrency < 2 || len(cols) < 2 {
		for i, col := range cols {
			if err := l.fillColumn(ctx, &pane.Columns[i], col); err != nil {
				return nil, err
			}
		}
		return pane, nil
	}

	// Each goroutine writes only its own column slot.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.FetchConcurrency)
	for i, col := range cols {
		i, col := i, col
		g.Go(func() error {
			return l.fillColumn(gctx, &pane.Columns[i], col)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pane, nil
}

func (l *Loop) fillColumn(ctx context.Context, pane *ColumnPane, col models.Column) error {
	cards, err := l.src.ListCards(ctx, col.ID)
	if err != nil {
		if l.opts.AbortOnSourceError {
			return fmt.Errorf("column %s: %w", col.ID, err)
		}
		log.Printf("[dashboard] cannot list cards of column %s: %v", col.ID, err)
		pane.Err = err.Error()
		return nil
	}

	pane.Cards = make([]string, len(cards))
	for i, card := range cards {
		pane.Cards[i] = card.Name
	}
	return nil
}
