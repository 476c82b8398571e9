package stream

import (
	"github.com/Cyclone1070/agentgate/internal/workflow"
)

// Forward pushes events to r until the channel is closed, then closes r.
// It stops at the first failed Push and returns its error; the caller
// should then cancel the producer. The channel is not drained.
func Forward(r Responder, events <-chan workflow.Event) error {
	defer r.Close()

	if err := r.Open(); err != nil {
		return err
	}
	for ev := range events {
		if err := r.Push(ev); err != nil {
			return err
		}
	}
	return nil
}
