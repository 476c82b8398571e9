package weather

import (
	"fmt"

	"github.com/Cyclone1070/agentgate/internal/tool/errutil"
)

// ConfigurationError is returned when the weather API key is not set.
type ConfigurationError struct {
	Variable string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("weather lookups are unavailable: %s is not set", e.Variable)
}

func (e *ConfigurationError) Unwrap() error { return errutil.ErrConfiguration }

// UpstreamError is returned when the weather service fails or answers with
// something that cannot be decoded.
type UpstreamError struct {
	Location string
	Status   int
	Message  string
	Cause    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("weather lookup for %q failed: %s", e.Location, e.Message)
	case e.Cause != nil:
		return fmt.Sprintf("weather lookup for %q failed: %v", e.Location, e.Cause)
	default:
		return fmt.Sprintf("weather lookup for %q failed with status %d", e.Location, e.Status)
	}
}

func (e *UpstreamError) Unwrap() []error {
	if e.Cause != nil {
		return []error{errutil.ErrUpstream, e.Cause}
	}
	return []error{errutil.ErrUpstream}
}
