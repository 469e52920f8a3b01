// Package app provides application lifecycle management, state, and events.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"diffraction-viewer/internal/frame"
	"diffraction-viewer/pkg/geometry"
)

// State holds the application state: the loaded frame and the committed
// selection rectangle. Exactly one of each exists at a time; both are
// replaced wholesale, never partially mutated.
type State struct {
	mu  sync.RWMutex
	log zerolog.Logger

	frame     *frame.Frame
	selection *geometry.Rect

	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventFrameLoaded EventType = iota
	EventSelectionCommitted
	EventSelectionCleared
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState(log zerolog.Logger) *State {
	return &State{
		log:       log.With().Str("component", "state").Logger(),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadFrame decodes the image at path and replaces the current frame.
// Any committed selection is discarded; projection stays disabled until a
// new rectangle is committed.
func (s *State) LoadFrame(path string) error {
	f, err := frame.Load(path)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("image load failed")
		return err
	}

	s.mu.Lock()
	s.frame = f
	s.selection = nil
	s.mu.Unlock()

	s.log.Info().
		Str("path", path).
		Stringer("decoder", f.From).
		Int("rows", f.Rows()).
		Int("cols", f.Cols()).
		Int("channels", f.Channels()).
		Msg("image loaded")

	s.Emit(EventSelectionCleared, nil)
	s.Emit(EventFrameLoaded, f)
	return nil
}

// Frame returns the loaded frame, or nil.
func (s *State) Frame() *frame.Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// CommitSelection stores the committed selection rectangle.
func (s *State) CommitSelection(r geometry.Rect) {
	s.mu.Lock()
	s.selection = &r
	s.mu.Unlock()

	s.log.Debug().
		Float64("x", r.X).Float64("y", r.Y).
		Float64("w", r.Width).Float64("h", r.Height).
		Msg("selection committed")
	s.Emit(EventSelectionCommitted, r)
}

// ClearSelection discards the committed selection rectangle.
func (s *State) ClearSelection() {
	s.mu.Lock()
	had := s.selection != nil
	s.selection = nil
	s.mu.Unlock()

	if had {
		s.Emit(EventSelectionCleared, nil)
	}
}

// Selection returns the committed selection, if one exists.
func (s *State) Selection() (geometry.Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selection == nil {
		return geometry.Rect{}, false
	}
	return *s.selection, true
}

// CanProject reports whether both a frame and a committed selection exist.
func (s *State) CanProject() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame != nil && s.selection != nil
}

// Projection computes the row-sum projection of the committed selection.
// It is a no-op returning ok=false when either the frame or the selection
// is missing.
func (s *State) Projection() ([]float64, bool) {
	s.mu.RLock()
	f := s.frame
	sel := s.selection
	s.mu.RUnlock()

	if f == nil || sel == nil {
		return nil, false
	}
	return f.RowSums(*sel), true
}
