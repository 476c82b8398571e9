package shell

import (
	"path/filepath"
	"slices"
	"strings"
)

// Policy restricts which binaries a command line may invoke.
// An empty Allow list permits every binary not in Deny.
type Policy struct {
	Allow []string
	Deny  []string
}

// Evaluate checks every simple command in a shell command line.
func (p Policy) Evaluate(command string) error {
	if len(p.Allow) > 0 && (strings.Contains(command, "$(") || strings.Contains(command, "`")) {
		return &RejectedError{Binary: "$(...)", Reason: "command substitution is not allowed with an allowlist"}
	}

	for _, bin := range commandRoots(command) {
		if slices.Contains(p.Deny, bin) {
			return &RejectedError{Binary: bin, Reason: "binary is denied"}
		}
		if len(p.Allow) > 0 && !slices.Contains(p.Allow, bin) {
			return &RejectedError{Binary: bin, Reason: "binary is not in the allowlist"}
		}
	}
	return nil
}

// commandRoots returns the base name of the binary at the head of each
// simple command, e.g. "FOO=1 /usr/bin/git log | wc -l" -> [git wc].
func commandRoots(command string) []string {
	separators := func(r rune) bool {
		switch r {
		case ';', '|', '&', '\n', '(', ')', '{', '}':
			return true
		}
		return false
	}

	redirects := strings.NewReplacer(">&", ">", "<&", "<", "&>", ">")
	// The shell removes quoting before lookup, so "r""m" and r\m both run rm.
	unquote := strings.NewReplacer(`"`, "", "'", "", `\`, "")

	var roots []string
	for _, segment := range strings.FieldsFunc(redirects.Replace(command), separators) {
		for _, word := range strings.Fields(segment) {
			if isAssignment(word) {
				continue
			}
			word = unquote.Replace(word)
			if word == "" {
				break
			}
			roots = append(roots, filepath.Base(word))
			break
		}
	}
	return roots
}

func isAssignment(word string) bool {
	eq := strings.IndexByte(word, '=')
	if eq <= 0 {
		return false
	}
	for _, r := range word[:eq] {
		if r != '_' && (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
