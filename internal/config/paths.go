package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pingcap/errors"
)

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(key string) string

// ToolHome returns the per-user directory the CLI reads its files from.
// It checks the HomeEnv variable (e.g. CODEX_HOME) first,
// then falls back to ~/<HomeDir>.
func (s *Settings) ToolHome(getenv Getenv) (string, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if s.HomeEnv != "" {
		if v := strings.TrimSpace(getenv(s.HomeEnv)); v != "" {
			return v, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Annotate(err, "resolving home directory")
	}
	return filepath.Join(home, s.HomeDir), nil
}

// ConfigSourcePath returns the repository configuration file.
func (s *Settings) ConfigSourcePath() string {
	return s.Resolve(s.Config.Source)
}

// ConfigTargetPath returns where the configuration file is copied to.
func (s *Settings) ConfigTargetPath(toolHome string) string {
	return filepath.Join(toolHome, s.Config.Target)
}

// CredentialTargetPath returns where the credential file is written.
func (s *Settings) CredentialTargetPath(toolHome string) string {
	return filepath.Join(toolHome, s.Credential.Target)
}

// ScriptPath returns the script entrypoint inside the local dependency tree.
func (s *Settings) ScriptPath() string {
	return s.Resolve(s.Entrypoint.Script)
}

// BinDirPath returns the local binary directory.
func (s *Settings) BinDirPath() string {
	return s.Resolve(s.Entrypoint.BinDir)
}
