package econfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seuros/dictator/internal/config"
)

func TestOverlayNoEditorconfig(t *testing.T) {
	dir := t.TempDir()
	base := config.DecreeSettings{}
	got := Overlay(base, dir, "dictate.toml")
	assert.Nil(t, got.TrailingWhitespace)
	assert.Nil(t, got.TabWidth)
}

func TestOverlayAppliesEditorconfigValues(t *testing.T) {
	dir := t.TempDir()
	econfigBody := `root = true

[*]
trim_trailing_whitespace = true
indent_style = tab
indent_size = 4
insert_final_newline = true
end_of_line = lf
max_line_length = 100
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte(econfigBody), 0o644))

	got := Overlay(config.DecreeSettings{}, dir, "dictate.toml")
	require.NotNil(t, got.TrailingWhitespace)
	assert.Equal(t, "deny", *got.TrailingWhitespace)
	require.NotNil(t, got.TabsVsSpaces)
	assert.Equal(t, "tabs", *got.TabsVsSpaces)
	require.NotNil(t, got.TabWidth)
	assert.Equal(t, 4, *got.TabWidth)
	require.NotNil(t, got.FinalNewline)
	assert.Equal(t, "require", *got.FinalNewline)
	require.NotNil(t, got.LineEndings)
	assert.Equal(t, "lf", *got.LineEndings)
	require.NotNil(t, got.MaxLineLength)
	assert.Equal(t, 100, *got.MaxLineLength)
}

func TestOverlayDoesNotClobberSetFields(t *testing.T) {
	dir := t.TempDir()
	econfigBody := "[*]\nindent_size = 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte(econfigBody), 0o644))

	existing := 8
	base := config.DecreeSettings{TabWidth: &existing}
	got := Overlay(base, dir, "dictate.toml")
	require.NotNil(t, got.TabWidth)
	assert.Equal(t, 8, *got.TabWidth)
}
