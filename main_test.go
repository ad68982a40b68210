package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_BadConfig(t *testing.T) {
	t.Cleanup(func() {
		configPath = ""
	})

	configPath = filepath.Join(t.TempDir(), "missing.yaml")

	err := run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")

	configPath = filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("fold_direction: left\n"), 0o644))

	err = run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown fold direction left")
}
