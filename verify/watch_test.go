package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContentChangedTracksHashes(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sc.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: a\n"), 0o644))

	w, err := NewWatcher(zap.NewNop(), []string{dir})
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.True(t, w.contentChanged(file), "first sighting counts as changed")
	assert.False(t, w.contentChanged(file), "identical content is skipped")

	require.NoError(t, os.WriteFile(file, []byte("name: b\n"), 0o644))
	assert.True(t, w.contentChanged(file))
}

func TestNewWatcherRejectsMissingPath(t *testing.T) {
	_, err := NewWatcher(zap.NewNop(), []string{"does/not/exist"})
	assert.Error(t, err)
}
