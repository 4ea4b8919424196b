package goSession

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/MrEthical07/goSession/session"
)

// EventKind defines a public type used by goSession APIs.
//
// EventKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventKind string

const (
	// EventSessionCreated is an exported constant or variable used by the session engine.
	EventSessionCreated EventKind = "session_created"
	// EventSessionDeleted is an exported constant or variable used by the session engine.
	EventSessionDeleted EventKind = "session_deleted"
)

// Event is the domain event published after a committed state change.
type Event struct {
	Kind    EventKind         `json:"kind"`
	Account session.AccountID `json:"account"`
	At      time.Time         `json:"at"`
}

// EventSink receives domain events. Emit returning an error is surfaced
// to the engine's caller as ErrNotificationFailed; the state change that
// produced the event is never rolled back.
type EventSink interface {
	Emit(ctx context.Context, event Event) error
}

// NoOpSink discards events.
type NoOpSink struct{}

// Emit implements EventSink.
func (NoOpSink) Emit(context.Context, Event) error { return nil }

// ChannelSink forwards events to a buffered channel. Emit blocks when
// the buffer is full until a receiver drains it or ctx is done.
type ChannelSink struct {
	events chan Event
}

// NewChannelSink creates a ChannelSink with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{events: make(chan Event, buffer)}
}

// Emit implements EventSink.
func (s *ChannelSink) Emit(ctx context.Context, event Event) error {
	select {
	case s.events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events exposes the receive side of the sink.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// JSONWriterSink writes one JSON object per event, newline-delimited.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink creates a JSONWriterSink over w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{writer: w}
}

// Emit implements EventSink.
func (s *JSONWriterSink) Emit(_ context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	_, err = s.writer.Write([]byte("\n"))
	return err
}
