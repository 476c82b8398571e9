// Package stream writes workflow events to an HTTP response as they happen.
package stream

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/Cyclone1070/agentgate/internal/workflow"
)

// ErrClosed is returned by Push once the responder is closed or a write to
// the client has failed.
var ErrClosed = errors.New("stream closed")

// Responder turns events into an open, incrementally flushed response body.
// Implementations are safe for concurrent use.
type Responder interface {
	// Open writes the status line and headers. It is called implicitly by
	// the first Push.
	Open() error

	// Push writes one event and flushes it to the client.
	Push(ev workflow.Event) error

	// Close ends the stream. Later calls to Push return ErrClosed.
	Close() error
}

// Negotiate picks the SSE responder when the client asks for
// text/event-stream, by Accept header or ?format=sse, and plain text otherwise.
func Negotiate(r *http.Request, w http.ResponseWriter) Responder {
	if r.URL.Query().Get("format") == "sse" || strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return NewSSEResponder(w)
	}
	return NewTextResponder(w)
}

// base holds the state shared by both encodings.
type base struct {
	w           http.ResponseWriter
	rc          *http.ResponseController
	contentType string

	mu     sync.Mutex
	opened bool
	closed bool
}

func newBase(w http.ResponseWriter, contentType string) base {
	return base{
		w:           w,
		rc:          http.NewResponseController(w),
		contentType: contentType,
	}
}

func (b *base) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.openLocked()
}

func (b *base) openLocked() error {
	if b.closed {
		return ErrClosed
	}
	if b.opened {
		return nil
	}
	b.opened = true

	h := b.w.Header()
	h.Set("Content-Type", b.contentType)
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	b.w.WriteHeader(http.StatusOK)
	return b.flushLocked()
}

func (b *base) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// write sends data and flushes, opening the stream first if needed.
func (b *base) write(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.openLocked(); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	if _, err := b.w.Write(data); err != nil {
		b.closed = true
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return b.flushLocked()
}

func (b *base) flushLocked() error {
	err := b.rc.Flush()
	if err == nil || errors.Is(err, http.ErrNotSupported) {
		return nil
	}
	b.closed = true
	return fmt.Errorf("%w: %v", ErrClosed, err)
}
