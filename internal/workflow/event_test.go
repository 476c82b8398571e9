package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit_Delivers(t *testing.T) {
	events := make(chan Event, 1)

	require.NoError(t, Emit(context.Background(), events, TextEvent{Text: "hi"}))

	assert.Equal(t, TextEvent{Text: "hi"}, <-events)
}

func TestEmit_BlocksUntilRoom(t *testing.T) {
	events := make(chan Event, 1)
	events <- TextEvent{Text: "first"}

	done := make(chan error, 1)
	go func() {
		done <- Emit(context.Background(), events, TextEvent{Text: "second"})
	}()

	select {
	case <-done:
		t.Fatal("Emit returned while the channel was full")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, TextEvent{Text: "first"}, <-events)
	require.NoError(t, <-done)
	assert.Equal(t, TextEvent{Text: "second"}, <-events)
}

func TestEmit_CancelledWhileBlocked(t *testing.T) {
	events := make(chan Event)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Emit(ctx, events, DoneEvent{})
	}()
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestEmit_NilChannel(t *testing.T) {
	assert.NoError(t, Emit(context.Background(), nil, DoneEvent{}))
}
