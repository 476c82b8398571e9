package search

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/tool/helper/content"
	"github.com/Cyclone1070/agentgate/internal/tool/service/executor"
)

const truncatedSuffix = "...[truncated]"

// SearchTextTool finds literal text in the project files with grep.
type SearchTextTool struct {
	commandExecutor commandExecutor
	loadIgnore      func() (ignoreMatcher, error)
	config          *config.Config
	root            string
}

// NewSearchTextTool creates a new SearchTextTool with injected dependencies.
func NewSearchTextTool(
	commandExecutor commandExecutor,
	loadIgnore func() (ignoreMatcher, error),
	cfg *config.Config,
	root string,
) *SearchTextTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if root == "" {
		panic("root is required")
	}
	return &SearchTextTool{
		commandExecutor: commandExecutor,
		loadIgnore:      loadIgnore,
		config:          cfg,
		root:            root,
	}
}

// Run searches the project root recursively for req.Text as a fixed string.
// The text is passed as a single argument after "--", never through a shell.
// Binary files, excluded directories and gitignored files are skipped.
func (t *SearchTextTool) Run(ctx context.Context, req *SearchTextRequest) (*SearchTextResponse, error) {
	cmd := t.command(req.Text)
	timeout := time.Duration(t.config.Tools.MaxCommandTimeoutMs) * time.Millisecond

	result, err := t.commandExecutor.RunWithTimeout(ctx, cmd, t.root, executor.Environ(), timeout)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &CommandFailedError{ExitCode: -1, Cause: err}
	}

	// grep exits 1 when nothing matched.
	if result.ExitCode > 1 && strings.TrimSpace(result.Stdout) == "" {
		return nil, &CommandFailedError{ExitCode: result.ExitCode, Stderr: result.Stderr}
	}

	var matcher ignoreMatcher
	if t.loadIgnore != nil {
		if matcher, err = t.loadIgnore(); err != nil {
			return nil, err
		}
	}

	matches := make([]Match, 0)
	truncated := result.Truncated
	maxResults := t.config.Tools.MaxSearchResults
	for _, line := range content.SplitLines(result.Stdout) {
		if line == "" {
			continue
		}
		m, ok := parseLine(line)
		if !ok {
			continue
		}
		if matcher != nil && matcher.ShouldIgnore(m.FilePath, false) {
			continue
		}
		if maxResults > 0 && len(matches) >= maxResults {
			truncated = true
			break
		}
		m.Text = t.clip(m.Text)
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].FilePath != matches[j].FilePath {
			return matches[i].FilePath < matches[j].FilePath
		}
		return lineOf(matches[i]) < lineOf(matches[j])
	})

	return &SearchTextResponse{
		Matches:   matches,
		Truncated: truncated,
		Stderr:    result.Stderr,
	}, nil
}

func (t *SearchTextTool) command(text string) []string {
	cmd := []string{"grep", "-rnIF"}
	for _, dir := range t.config.Tools.ExcludedDirs {
		cmd = append(cmd, "--exclude-dir="+dir)
	}
	return append(cmd, "--", text, ".")
}

func (t *SearchTextTool) clip(s string) string {
	s = strings.TrimRight(s, "\r")
	limit := t.config.Tools.MaxLineLength
	if limit > 0 && len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + truncatedSuffix
	}
	return s
}

// grepLine matches `grep -n` output: the shortest file name followed by
// ":<line>:".
var grepLine = regexp.MustCompile(`^(?:\./)?(.*?):(\d+):(.*)$`)

// parseLine splits one line of grep output. When no line number can be
// found the text after the first colon is kept and Line is nil.
func parseLine(line string) (Match, bool) {
	if sub := grepLine.FindStringSubmatch(line); sub != nil && sub[1] != "" {
		if n, err := strconv.Atoi(sub[2]); err == nil {
			return Match{FilePath: sub[1], Line: &n, Text: sub[3]}, true
		}
	}

	name, rest, ok := strings.Cut(line, ":")
	name = strings.TrimPrefix(name, "./")
	if !ok || name == "" {
		return Match{}, false
	}
	return Match{FilePath: name, Text: rest}, true
}

func lineOf(m Match) int {
	if m.Line == nil {
		return 0
	}
	return *m.Line
}
