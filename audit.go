package goSession

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditEvent records one engine operation for the audit trail. Audit is
// best-effort observability and never influences operation outcomes.
type AuditEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Operation string    `json:"operation"`
	Account   string    `json:"account,omitempty"`
	Delegate  string    `json:"delegate,omitempty"`
	Signed    bool      `json:"signed,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// AuditSink receives audit events from the async dispatcher.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpAuditSink discards audit events.
type NoOpAuditSink struct{}

// Emit implements AuditSink.
func (NoOpAuditSink) Emit(context.Context, AuditEvent) {}

// JSONAuditSink writes one JSON object per audit event, newline-delimited.
type JSONAuditSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONAuditSink creates a JSONAuditSink over w.
func NewJSONAuditSink(w io.Writer) *JSONAuditSink {
	return &JSONAuditSink{writer: w}
}

// Emit implements AuditSink.
func (s *JSONAuditSink) Emit(_ context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

func newAuditEvent(operation string) AuditEvent {
	return AuditEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Operation: operation,
	}
}
