package services

import (
	"fmt"
	"strings"
)

const maxArgLen = 60

// FormatToolDescription turns a tool call into a short log line.
func FormatToolDescription(name string, args map[string]any) string {
	switch name {
	case "read_file":
		if p, ok := stringArg(args, "filePath", "path"); ok {
			return fmt.Sprintf("read_file %s", p)
		}
	case "run_terminal_command":
		if cmd, ok := stringArg(args, "command"); ok {
			return fmt.Sprintf("run_terminal_command '%s'", clip(cmd))
		}
	case "search_text":
		if text, ok := stringArg(args, "text"); ok {
			return fmt.Sprintf("search_text '%s'", clip(text))
		}
	case "get_current_weather":
		if loc, ok := stringArg(args, "location"); ok {
			return fmt.Sprintf("get_current_weather %s", loc)
		}
	case "get_current_datetime":
		if format, ok := stringArg(args, "format"); ok {
			return fmt.Sprintf("get_current_datetime %s", format)
		}
	}
	return name
}

func stringArg(args map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := args[k].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func clip(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxArgLen {
		return s
	}
	return s[:maxArgLen] + "..."
}
