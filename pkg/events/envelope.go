// Package events provides the generic event infrastructure for analytics
// event emission. It defines the Envelope type that wraps domain events with
// consistent metadata and the EventSink interface events are delivered to.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Envelope wraps analytics events with consistent metadata for reliable
// downstream processing. The envelope pattern gives every event a stable
// identity, an idempotency key for exactly-once consumers, and workflow
// correlation fields for debugging.
type Envelope struct {
	// ID uniquely identifies this event instance.
	ID string `json:"id"`

	// Type identifies the event for routing.
	// Example: "analytics.dashboard_computed".
	Type string `json:"type"`

	// Source identifies the component that emitted the event.
	// Example: "analytics-activity".
	Source string `json:"source"`

	// Version enables payload schema evolution, semver starting at "1.0.0".
	Version string `json:"version"`

	// Timestamp records when the event was emitted.
	Timestamp time.Time `json:"timestamp"`

	// IdempotencyKey deduplicates redeliveries during activity retries.
	// Derived deterministically from workflow context and event content.
	IdempotencyKey string `json:"idempotency_key"`

	// WorkflowID identifies the workflow that triggered the event.
	WorkflowID string `json:"workflow_id"`

	// RunID identifies the specific workflow execution run.
	RunID string `json:"run_id"`

	// Payload carries the event-specific data; schema varies by Type and
	// Version.
	Payload json.RawMessage `json:"payload"`
}

// EventSink receives emitted events. Implementations range from database
// outbox tables to message brokers to test capture buffers. Emission is
// best-effort: events matter for observability, not correctness, so callers
// must not fail their primary operation on sink errors.
type EventSink interface {
	// Append adds an event to the sink. Implementations should treat
	// duplicate idempotency keys as no-ops and return quickly.
	Append(ctx context.Context, envelope Envelope) error
}

// NoOpEventSink discards every event. Useful when event emission is disabled.
type NoOpEventSink struct{}

// Append implements EventSink by discarding the event.
func (n *NoOpEventSink) Append(context.Context, Envelope) error { return nil }

// NewNoOpEventSink creates a sink that discards every event.
func NewNoOpEventSink() EventSink { return &NoOpEventSink{} }

// CaptureSink retains appended events in memory for test assertions.
type CaptureSink struct {
	mu       sync.Mutex
	captured []Envelope
}

// NewCaptureSink creates an empty capturing sink.
func NewCaptureSink() *CaptureSink { return &CaptureSink{} }

// Append implements EventSink by retaining the envelope.
func (c *CaptureSink) Append(_ context.Context, envelope Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.captured = append(c.captured, envelope)
	return nil
}

// Events returns a snapshot of the captured envelopes in append order.
func (c *CaptureSink) Events() []Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Envelope, len(c.captured))
	copy(out, c.captured)
	return out
}
