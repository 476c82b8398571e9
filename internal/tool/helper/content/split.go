package content

import "strings"

// SplitLines breaks s on "\n" or "\r\n". A final line terminator does not
// produce a trailing empty line, and a lone "\r" is kept as text.
func SplitLines(s string) []string {
	var lines []string
	for s != "" {
		line, rest, found := strings.Cut(s, "\n")
		if found {
			line = strings.TrimSuffix(line, "\r")
		}
		lines = append(lines, line)
		s = rest
	}
	return lines
}
