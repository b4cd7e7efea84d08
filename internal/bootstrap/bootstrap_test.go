package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/dictator/internal/config"
)

func TestWriteOccupyFilesFresh(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteOccupyFiles(dir, false))

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultDictateTOML, string(data))

	info, err := os.Stat(filepath.Join(dir, ".dictator", "cache"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	gi, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(gi), GitignoreEntry)
}

func TestWriteOccupyFilesRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteOccupyFiles(dir, false))
	err := WriteOccupyFiles(dir, false)
	assert.Error(t, err)
}

func TestWriteOccupyFilesForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteOccupyFiles(dir, false))
	require.NoError(t, WriteOccupyFilesWithContent(dir, true, "[decree.supreme]\n"))

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "[decree.supreme]\n", string(data))
}

func TestEnsureGitignoreEntryIdempotent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, EnsureGitignoreEntry(dir))
	require.NoError(t, EnsureGitignoreEntry(dir))

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, 1, countOccurrences(string(data), GitignoreEntry))
}

func TestEnsureGitignoreEntryAppendsToExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("node_modules/"), 0o644))
	require.NoError(t, EnsureGitignoreEntry(dir))

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "node_modules/")
	assert.Contains(t, string(data), GitignoreEntry)
}

func TestRenderSupremeTOMLDefaults(t *testing.T) {
	got := RenderSupremeTOML(config.DecreeSettings{})
	assert.Equal(t, DefaultDictateTOML, got)
}

func TestRenderSupremeTOMLOverrides(t *testing.T) {
	width := 4
	tabs := "tabs"
	got := RenderSupremeTOML(config.DecreeSettings{TabWidth: &width, TabsVsSpaces: &tabs})
	assert.Contains(t, got, `tab-width = 4`)
	assert.Contains(t, got, `tabs-vs-spaces = "tabs"`)
}

func countOccurrences(s, substr string) int {
	count := 0
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
			i += len(substr) - 1
		}
	}
	return count
}
