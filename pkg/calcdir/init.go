package calcdir

import (
	"errors"
	"fmt"
	"os"
)

const gitignoreContent = "local/\n"

// ErrConfigExists is returned by BootstrapWithConfig when config.yaml is
// already present.
var ErrConfigExists = errors.New("calcdir: config already exists")

// EnsureStructure creates the local/ directory and .gitignore file if they are
// missing. It is idempotent.
func EnsureStructure(d Dir) error {
	if err := os.MkdirAll(d.LocalDir(), 0o750); err != nil {
		return fmt.Errorf("calcdir: create local dir: %w", err)
	}

	if err := ensureGitignore(d); err != nil {
		return fmt.Errorf("calcdir: gitignore: %w", err)
	}

	return nil
}

// BootstrapWithConfig creates the directory, writes config.yaml and sets up
// the local structure. An existing config is never overwritten.
func BootstrapWithConfig(d Dir, configYAML []byte) error {
	if _, err := os.Stat(d.ConfigPath()); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, d.ConfigPath())
	}

	if err := os.MkdirAll(d.Root(), 0o750); err != nil {
		return fmt.Errorf("calcdir: create root: %w", err)
	}

	if err := os.WriteFile(d.ConfigPath(), configYAML, 0o600); err != nil {
		return fmt.Errorf("calcdir: write config: %w", err)
	}

	return EnsureStructure(d)
}

func ensureGitignore(d Dir) error {
	path := d.GitignorePath()

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(gitignoreContent), 0o600)
}
