package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokinpui/threeside.go/internal/side"
)

func writeTestConfig(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestResolveConfigPath(t *testing.T) {
	configHome := "/tmp/xdg-config-home"

	t.Run("defaultPath", func(t *testing.T) {
		path := resolveConfigPath(configHome, "", false)
		require.True(t, path.Enabled)
		require.False(t, path.Required)
		require.Equal(t, filepath.Join(configHome, defaultConfigRelPath), path.Path)
	})

	t.Run("explicitPath", func(t *testing.T) {
		path := resolveConfigPath(configHome, "/tmp/custom.yaml", false)
		require.True(t, path.Enabled)
		require.True(t, path.Required)
		require.Equal(t, "/tmp/custom.yaml", path.Path)
	})

	t.Run("noConfigWins", func(t *testing.T) {
		path := resolveConfigPath(configHome, "/tmp/custom.yaml", true)
		require.False(t, path.Enabled)
		require.Empty(t, path.Path)
	})
}

func TestLoadConfigFile_DefaultMissingFileIsOptional(t *testing.T) {
	cfg, err := loadConfigFile(t.TempDir(), "", false)
	require.NoError(t, err)
	require.Equal(t, fileConfig{}, cfg)
}

func TestLoadConfigFile_ExplicitMissingFileErrors(t *testing.T) {
	configHome := t.TempDir()
	_, err := loadConfigFile(configHome, filepath.Join(configHome, "missing.yaml"), false)
	require.ErrorContains(t, err, "read config")
	require.ErrorContains(t, err, "missing.yaml")
}

func TestLoadConfigFile_UnknownKeyErrors(t *testing.T) {
	configHome := t.TempDir()
	writeTestConfig(t, filepath.Join(configHome, defaultConfigRelPath), "colour: blue\n")
	_, err := loadConfigFile(configHome, "", false)
	require.ErrorContains(t, err, "parse config")
}

func TestLoadConfigFile_InvalidSideErrors(t *testing.T) {
	configHome := t.TempDir()
	writeTestConfig(t, filepath.Join(configHome, defaultConfigRelPath), "default-side: [middle]\n")
	_, err := loadConfigFile(configHome, "", false)
	require.ErrorContains(t, err, "default-side")
}

func TestLoadConfigFile_EmptyFile(t *testing.T) {
	configHome := t.TempDir()
	writeTestConfig(t, filepath.Join(configHome, defaultConfigRelPath), "")
	cfg, err := loadConfigFile(configHome, "", false)
	require.NoError(t, err)
	require.Equal(t, fileConfig{}, cfg)
}

func TestParse_PositionalContents(t *testing.T) {
	cfg, err := Parse([]string{"--no-config", "mine.go", "base.go", "theirs.go"}, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "mine.go", cfg.Left)
	require.Equal(t, "base.go", cfg.Base)
	require.Equal(t, "theirs.go", cfg.Right)
	require.Equal(t, PresenterTUI, cfg.Presenter)
	require.Equal(t, []side.Side{side.Base, side.Left}, cfg.Sides())
}

func TestParse_ConfigFileFillsUnsetFlags(t *testing.T) {
	configHome := t.TempDir()
	writeTestConfig(t, filepath.Join(configHome, defaultConfigRelPath),
		"default-side: [right, left]\npresenter: nvim\nstate-dir: /tmp/hints\n")

	cfg, err := Parse([]string{"--presenter", "clipboard", "a", "b", "c"}, configHome)
	require.NoError(t, err)
	require.Equal(t, []side.Side{side.Right, side.Left}, cfg.Sides())
	require.Equal(t, PresenterClipboard, cfg.Presenter)
	require.Equal(t, "/tmp/hints", cfg.StateDir)
}

func TestParse_PartialDefaultsToStdout(t *testing.T) {
	configHome := t.TempDir()
	writeTestConfig(t, filepath.Join(configHome, defaultConfigRelPath), "presenter: tui\n")

	cfg, err := Parse([]string{"-p", "left-right", "a", "b", "c"}, configHome)
	require.NoError(t, err)
	require.Equal(t, PresenterStdout, cfg.Presenter)

	_, err = Parse([]string{"-p", "left-right", "--presenter", "tui", "a", "b", "c"}, configHome)
	require.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing contents", []string{}},
		{"two positional", []string{"a", "b"}},
		{"positional and flags", []string{"--left", "x", "a", "b", "c"}},
		{"markdown and contents", []string{"--markdown", "m.md", "a", "b", "c"}},
		{"bad side", []string{"--side", "middle", "a", "b", "c"}},
		{"bad partial", []string{"--partial", "base-left", "a", "b", "c"}},
		{"bad presenter", []string{"--presenter", "printer", "a", "b", "c"}},
		{"print and partial", []string{"--print", "-p", "left-base", "a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(append([]string{"--no-config"}, tt.args...), t.TempDir())
			require.Error(t, err)
		})
	}
}

func TestParse_Markdown(t *testing.T) {
	cfg, err := Parse([]string{"--no-config", "-m", "conflict.md"}, t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "conflict.md", cfg.Markdown)
}
