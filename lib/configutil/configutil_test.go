package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	OutputDir string `json:"output_dir"`
	UserAgent string `json:"user_agent"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "skillsync.json5")

	err := os.WriteFile(name, []byte(`{
		// comments are fine in json5
		output_dir: "skills_sh",
		user_agent: "test-agent",
	}`), 0o644)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "skills_sh", cfg.OutputDir)
	require.Equal(t, "test-agent", cfg.UserAgent)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "skillsync.json5")

	err := os.WriteFile(name, []byte(`{output_dir: "skills_sh", user_agent: "base"}`), 0o644)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "skillsync.local.json5"),
		[]byte(`{user_agent: "local"}`),
		0o644,
	)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "skills_sh", cfg.OutputDir)
	require.Equal(t, "local", cfg.UserAgent)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.True(t, os.IsNotExist(err))
}
