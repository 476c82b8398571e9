// Package client talks to the gateway's /generate endpoint and decodes its
// server-sent event stream.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
)

// Event types sent by the gateway.
const (
	TypeText      = "text"
	TypeToolStart = "tool_start"
	TypeToolEnd   = "tool_end"
	TypeError     = "error"
	TypeDone      = "done"
)

// maxLineSize bounds one SSE data line.
const maxLineSize = 1 << 20

// Event is one decoded stream event. Which fields are set depends on Type.
type Event struct {
	Type    string         `json:"-"`
	Text    string         `json:"text,omitempty"`
	Name    string         `json:"name,omitempty"`
	Args    map[string]any `json:"args,omitempty"`
	Error   string         `json:"error,omitempty"`
	Message string         `json:"message,omitempty"`
}

// Message is one conversation turn sent to the gateway.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StatusError is returned when the gateway rejects a request before streaming.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned %d", e.Status)
	}
	return fmt.Sprintf("gateway returned %d: %s", e.Status, e.Message)
}

// Client posts conversations to a gateway.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the gateway at baseURL. A nil httpClient uses
// http.DefaultClient; streams can be long, so it should not set a Timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// Generate sends the conversation and yields events as they arrive.
// Cancelling ctx closes the connection, which stops the run on the server.
func (c *Client) Generate(ctx context.Context, messages []Message) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		body, err := json.Marshal(map[string]any{"messages": messages})
		if err != nil {
			yield(Event{}, err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
		if err != nil {
			yield(Event{}, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "text/event-stream")

		resp, err := c.http.Do(req)
		if err != nil {
			yield(Event{}, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			yield(Event{}, statusError(resp))
			return
		}

		for ev, err := range Parse(resp.Body) {
			if !yield(ev, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return &StatusError{Status: resp.StatusCode, Message: msg}
}

// Parse decodes a text/event-stream body. Frames with unknown event names
// are skipped. Parsing ends at EOF or the first malformed frame.
func Parse(r io.Reader) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)

		var name string
		var data []string
		dispatch := func() bool {
			defer func() { name, data = "", nil }()
			if len(data) == 0 {
				return true
			}
			ev, err := decode(name, strings.Join(data, "\n"))
			if err != nil {
				yield(Event{}, err)
				return false
			}
			if ev.Type == "" {
				return true
			}
			return yield(ev, nil)
		}

		for sc.Scan() {
			line := sc.Text()
			switch {
			case line == "":
				if !dispatch() {
					return
				}
			case strings.HasPrefix(line, ":"):
			case strings.HasPrefix(line, "event:"):
				name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
			}
		}
		if err := sc.Err(); err != nil {
			yield(Event{}, err)
			return
		}
		dispatch()
	}
}

var errMalformed = errors.New("malformed event")

func decode(name, data string) (Event, error) {
	switch name {
	case TypeText, TypeToolStart, TypeToolEnd, TypeError, TypeDone:
	default:
		return Event{}, nil
	}
	var ev Event
	if err := json.Unmarshal([]byte(data), &ev); err != nil {
		return Event{}, fmt.Errorf("%w %q: %w", errMalformed, name, err)
	}
	ev.Type = name
	return ev, nil
}
