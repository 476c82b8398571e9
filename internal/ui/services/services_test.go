package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRenderer struct {
	RenderFunc func(string, int) (string, error)
}

func (m *mockRenderer) Render(content string, width int) (string, error) {
	return m.RenderFunc(content, width)
}

func TestFormatToolDescription(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"read path", "read_file", map[string]any{"path": "src/a.go"}, "read_file src/a.go"},
		{"read filePath wins", "read_file", map[string]any{"filePath": "b.go", "path": "a.go"}, "read_file b.go"},
		{"shell", "run_terminal_command", map[string]any{"command": "ls -la"}, "run_terminal_command 'ls -la'"},
		{"long search", "search_text", map[string]any{"text": strings.Repeat("x", 100)}, "search_text '" + strings.Repeat("x", 60) + "...'"},
		{"weather", "get_current_weather", map[string]any{"location": "Paris"}, "get_current_weather Paris"},
		{"no args", "list_project_files", nil, "list_project_files"},
		{"wrong type", "read_file", map[string]any{"path": 3}, "read_file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatToolDescription(tt.tool, tt.args))
		})
	}
}

func TestRenderMarkdown_Fallback(t *testing.T) {
	failing := &mockRenderer{RenderFunc: func(string, int) (string, error) {
		return "", errors.New("no terminal")
	}}

	assert.Equal(t, "**hi**", RenderMarkdown("**hi**", 80, failing))
	assert.Equal(t, "**hi**", RenderMarkdown("**hi**", 80, nil))
}

func TestGlamourRenderer(t *testing.T) {
	r := NewGlamourRenderer("notty")

	out, err := r.Render("# Title\n\nSome **bold** text.", 40)

	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
	assert.Len(t, r.renderers, 1)

	_, err = r.Render("again", 40)
	require.NoError(t, err)
	assert.Len(t, r.renderers, 1)
}
