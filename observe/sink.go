// Package observe carries widget lifecycle events (resolution, mount,
// server start and stop) to logging and tracing backends.
package observe

import (
	"context"
	"sync"
)

type Sink interface {
	Emit(ctx context.Context, event Event) error
}

type NoopSink struct{}

func (NoopSink) Emit(context.Context, Event) error {
	return nil
}

type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) Sink {
	filtered := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s == nil {
			continue
		}
		filtered = append(filtered, s)
	}
	if len(filtered) == 0 {
		return NoopSink{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &MultiSink{sinks: filtered}
}

// Emit fans event out to every sink. A failing sink does not stop the
// others; the first error is returned.
func (m *MultiSink) Emit(ctx context.Context, event Event) error {
	if m == nil {
		return nil
	}
	var first error
	for _, sink := range m.sinks {
		if err := sink.Emit(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// AsyncSink decouples request handling from slow sinks. Events are dropped
// when the buffer is full.
type AsyncSink struct {
	downstream Sink
	queue      chan Event
	done       chan struct{}
	once       sync.Once
	mu         sync.RWMutex
	closed     bool
}

func NewAsyncSink(downstream Sink, buffer int) *AsyncSink {
	if downstream == nil {
		downstream = NoopSink{}
	}
	if buffer <= 0 {
		buffer = 256
	}
	as := &AsyncSink{
		downstream: downstream,
		queue:      make(chan Event, buffer),
		done:       make(chan struct{}),
	}
	go as.loop()
	return as
}

func (s *AsyncSink) Emit(ctx context.Context, event Event) error {
	if s == nil {
		return nil
	}
	event.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case s.queue <- event:
		return nil
	default:
		return nil
	}
}

// Close stops accepting events and waits until queued ones are delivered.
func (s *AsyncSink) Close() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})
	<-s.done
}

func (s *AsyncSink) loop() {
	defer close(s.done)
	for event := range s.queue {
		_ = s.downstream.Emit(context.Background(), event)
	}
}
