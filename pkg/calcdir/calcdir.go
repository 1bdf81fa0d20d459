// Package calcdir encapsulates path knowledge for the .calcly/ directory: the
// config file and the local (gitignored) runtime state such as persisted
// history.
package calcdir

import (
	"os"
	"path/filepath"
)

// Dir is a value object that resolves paths within a .calcly/ directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Root returns the absolute path to the .calcly/ directory.
func (d Dir) Root() string { return d.root }

// ConfigPath returns the path to the main config file.
func (d Dir) ConfigPath() string { return filepath.Join(d.root, "config.yaml") }

// LocalDir returns the path to the local runtime state directory.
func (d Dir) LocalDir() string { return filepath.Join(d.root, "local") }

// HistoryPath returns the path to the persisted history store.
func (d Dir) HistoryPath() string { return filepath.Join(d.root, "local", "history.yaml") }

// GitignorePath returns the path to the .gitignore file inside .calcly/.
func (d Dir) GitignorePath() string { return filepath.Join(d.root, ".gitignore") }

// Exists reports whether the .calcly/ root directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}
