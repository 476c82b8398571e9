package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

const dotfile = "/home/user/.config/agentgate/config.json"

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load("")

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Workflow.MaxSteps)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model.Name)
	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, []string{"node_modules", ".git"}, cfg.Tools.ExcludedDirs)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	configJSON := `{"workflow": {"max_steps": 3}, "tools": {"project_root": "client"}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(configJSON)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load("")

	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workflow.MaxSteps)                 // Overridden
	assert.Equal(t, "client", cfg.Tools.ProjectRoot)          // Overridden
	assert.Equal(t, 10000, cfg.Tools.DefaultCommandTimeoutMs) // Default
	assert.Equal(t, 32, cfg.Workflow.EventBuffer)             // Default
}

func TestLoad_ExplicitYAMLPath(t *testing.T) {
	configYAML := `
server:
  addr: ":8080"
tools:
  command_allowlist: [ls, cat, git]
log:
  level: debug
  format: json
`
	fs := &MockFileSystem{
		Files: map[string][]byte{"/etc/agentgate.yaml": []byte(configYAML)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load("/etc/agentgate.yaml")

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"ls", "cat", "git"}, cfg.Tools.CommandAllowlist)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes) // Default
}

func TestLoad_EmptyConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{}`)},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load("")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{HomeDirErr: errors.New("no home")}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load("")

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Workflow.MaxSteps)
}

// --- ERROR TESTS ---

func TestLoad_ExplicitPathMissing_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{Files: map[string][]byte{}}
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load("/missing.json")

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{"workflow": `)},
	}
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load("")

	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestLoad_InvalidValues_FailsValidation(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{dotfile: []byte(`{"workflow": {"max_steps": 0}}`)},
	}
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "workflow.max_steps")
}
