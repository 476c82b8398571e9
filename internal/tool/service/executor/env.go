package executor

import (
	"os"
	"slices"
	"strings"
)

// SecretEnv lists variables never passed to child processes.
var SecretEnv = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "WEATHER_API_KEY"}

// ScrubEnv returns env without the SecretEnv entries.
func ScrubEnv(env []string) []string {
	out := make([]string, 0, len(env))
	for _, kv := range env {
		name, _, _ := strings.Cut(kv, "=")
		if slices.Contains(SecretEnv, name) {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// Environ is the scrubbed environment of the current process.
func Environ() []string {
	return ScrubEnv(os.Environ())
}
