// Package bootstrap writes the files dictator creates the first time it
// meets a repository: the default .dictate.toml, the .dictator/cache/
// directory, and a .gitignore entry for it. Both the occupy CLI command
// and the MCP server's occupy tool call into this package so the two
// entry points can never drift.
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seuros/dictator/internal/config"
)

// DefaultDictateTOML is the document occupy writes, mirroring
// config.Default()'s hygiene values.
const DefaultDictateTOML = `[decree.supreme]
trailing-whitespace = "deny"
tabs-vs-spaces = "spaces"
tab-width = 2
final-newline = "require"
line-endings = "lf"
max-line-length = 120
blank-line-whitespace = "deny"
`

// GitignoreEntry is the line occupy ensures is present in .gitignore.
const GitignoreEntry = ".dictator/"

// RenderSupremeTOML renders a `[decree.supreme]` table from s, falling
// back to DefaultDictateTOML's values for any unset field. Used by
// occupy --from-editorconfig to seed the written config from a repo's
// existing .editorconfig conventions instead of dictator's hard-coded
// defaults.
func RenderSupremeTOML(s config.DecreeSettings) string {
	str := func(p *string, def string) string {
		if p == nil {
			return def
		}
		return *p
	}
	num := func(p *int, def int) int {
		if p == nil {
			return def
		}
		return *p
	}

	return fmt.Sprintf(`[decree.supreme]
trailing-whitespace = %q
tabs-vs-spaces = %q
tab-width = %d
final-newline = %q
line-endings = %q
max-line-length = %d
blank-line-whitespace = %q
`,
		str(s.TrailingWhitespace, "deny"),
		str(s.TabsVsSpaces, "spaces"),
		num(s.TabWidth, 2),
		str(s.FinalNewline, "require"),
		str(s.LineEndings, "lf"),
		num(s.MaxLineLength, 120),
		str(s.BlankLineWhitespace, "deny"),
	)
}

// WriteOccupyFiles writes the default .dictate.toml, creates
// .dictator/cache/ (mode 0700), and ensures .gitignore excludes
// .dictator/. Refuses to overwrite an existing config unless force is
// set.
func WriteOccupyFiles(dir string, force bool) error {
	return WriteOccupyFilesWithContent(dir, force, DefaultDictateTOML)
}

// WriteOccupyFilesWithContent is WriteOccupyFiles with a caller-supplied
// .dictate.toml body, for occupy --from-editorconfig.
func WriteOccupyFilesWithContent(dir string, force bool, tomlContent string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if !force {
		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("%s already exists", cfgPath)
		}
	}
	if err := os.WriteFile(cfgPath, []byte(tomlContent), 0o644); err != nil { //nolint:gosec // config file, not a secret
		return err
	}

	cacheDir := filepath.Join(dir, ".dictator", "cache")
	if err := os.MkdirAll(cacheDir, 0o700); err != nil {
		return err
	}

	return EnsureGitignoreEntry(dir)
}

// EnsureGitignoreEntry appends GitignoreEntry to dir/.gitignore, creating
// the file if it doesn't exist yet. A no-op if the entry is already
// present.
func EnsureGitignoreEntry(dir string) error {
	path := filepath.Join(dir, ".gitignore")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(path, []byte(GitignoreEntry+"\n"), 0o644) //nolint:gosec // not a secret
		}
		return err
	}
	if strings.Contains(string(data), GitignoreEntry) {
		return nil
	}
	content := string(data)
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += GitignoreEntry + "\n"
	return os.WriteFile(path, []byte(content), 0o644) //nolint:gosec // not a secret
}
