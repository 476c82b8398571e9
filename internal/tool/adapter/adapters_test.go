package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/tool/errutil"
	"github.com/Cyclone1070/agentgate/internal/workflow/toolmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTools(t *testing.T) (map[string]toolmanager.Tool, string) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))

	cfg := config.DefaultConfig()
	cfg.Tools.ProjectRoot = root
	fixed := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	list, err := NewAll(Dependencies{
		Config: cfg,
		Now:    func() time.Time { return fixed },
	})
	require.NoError(t, err)

	byName := make(map[string]toolmanager.Tool, len(list))
	for _, tl := range list {
		byName[tl.Name()] = tl
	}
	return byName, root
}

func TestNewAll_Names(t *testing.T) {
	tools, _ := newTools(t)

	assert.Len(t, tools, 7)
	for _, name := range []string{ClockName, WeatherName, ShellName, ListFilesName, ReadFileName, LintName, SearchName} {
		tl, ok := tools[name]
		require.True(t, ok, name)
		assert.NotEmpty(t, tl.Declaration().Description)
	}
}

func TestNewAll_Declarations(t *testing.T) {
	tools, _ := newTools(t)

	assert.Nil(t, tools[ListFilesName].Declaration().Parameters)
	assert.Nil(t, tools[LintName].Declaration().Parameters)

	weather := tools[WeatherName].Declaration().Parameters
	require.NotNil(t, weather)
	assert.Contains(t, weather.Required, "location")

	read := tools[ReadFileName].Declaration().Parameters
	require.NotNil(t, read)
	assert.Contains(t, read.Properties, "filePath")
	assert.Contains(t, read.Properties, "path")
}

func TestNewAll_BadRoot(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.ProjectRoot = filepath.Join(t.TempDir(), "missing")

	_, err := NewAll(Dependencies{Config: cfg})
	assert.Error(t, err)
}

func TestClock_Call(t *testing.T) {
	tools, _ := newTools(t)

	out, err := tools[ClockName].Call(context.Background(), map[string]any{"format": "en-GB"})

	require.NoError(t, err)
	assert.Equal(t, "14:05:07", out["time"])
	assert.Equal(t, "09/03/2024", out["date"])
}

func TestReadFile_Call(t *testing.T) {
	tools, _ := newTools(t)

	out, err := tools[ReadFileName].Call(context.Background(), map[string]any{"path": "main.go"})
	require.NoError(t, err)
	assert.Equal(t, "package main\n", out["content"])
	assert.Equal(t, "main.go", out["resolved_path"])

	_, err = tools[ReadFileName].Call(context.Background(), map[string]any{"filePath": "../../etc/passwd"})
	assert.ErrorIs(t, err, errutil.ErrOutsideWorkspace)
}

func TestWeather_NoAPIKey(t *testing.T) {
	tools, _ := newTools(t)

	_, err := tools[WeatherName].Call(context.Background(), map[string]any{"location": "London"})
	assert.ErrorIs(t, err, errutil.ErrConfiguration)

	_, err = tools[WeatherName].Call(context.Background(), map[string]any{"location": "L"})
	assert.ErrorIs(t, err, errutil.ErrArgumentValidation)
}

func TestSearch_EmptyText(t *testing.T) {
	tools, _ := newTools(t)

	_, err := tools[SearchName].Call(context.Background(), map[string]any{"text": ""})
	assert.ErrorIs(t, err, errutil.ErrArgumentValidation)
}

func TestSearch_MultilineTextRejected(t *testing.T) {
	tools, _ := newTools(t)

	_, err := tools[SearchName].Call(context.Background(), map[string]any{"text": "alpha\nbeta"})
	assert.ErrorIs(t, err, errutil.ErrArgumentValidation)
}

func TestListProjectFiles_Call(t *testing.T) {
	tools, _ := newTools(t)

	out, err := tools[ListFilesName].Call(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "main.go", out["structure"])
}
