package exc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookDirs(t *testing.T) {
	dir := t.TempDir() + `/`
	exe := `fbsplash-test-helper`
	require.NoError(t, os.WriteFile(filepath.Join(dir, exe), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, `private`), []byte("#!/bin/sh\n"), 0o700))

	got, err := lookDirs(exe, []string{`/nonexistent/`, dir})
	require.NoError(t, err)
	assert.Equal(t, dir+exe, got)

	_, err = lookDirs(`private`, []string{dir})
	assert.Error(t, err)
	_, err = lookDirs(``, []string{dir})
	assert.Error(t, err)
}
