package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mafe.yml")
	require.NoError(t, os.WriteFile(path, []byte("width: 1024\nformat: png\nlabels: true\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, c.Width)
	assert.Equal(t, 600, c.Height)
	assert.Equal(t, "png", c.Format)
	assert.True(t, c.Labels)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
