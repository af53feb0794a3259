package bootstrap

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/minhhai2209/broker-gpt-2/internal/config"
	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fixture is an isolated project checkout plus tool home.
type fixture struct {
	root     string
	home     string
	env      map[string]string
	settings *config.Settings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	home := filepath.Join(t.TempDir(), ".codex")

	s, err := config.Load(config.LoadOptions{ProjectRoot: root})
	require.NoError(t, err)

	return &fixture{
		root:     root,
		home:     home,
		env:      map[string]string{"CODEX_HOME": home},
		settings: s,
	}
}

func (f *fixture) getenv(key string) string {
	return f.env[key]
}

func (f *fixture) state() *State {
	return &State{Settings: f.settings, ToolHome: f.home}
}

func (f *fixture) configSource() string {
	return filepath.Join(f.root, ".codex", "config.toml")
}

func (f *fixture) configTarget() string {
	return filepath.Join(f.home, "config.toml")
}

func (f *fixture) credentialTarget() string {
	return filepath.Join(f.home, "auth.json")
}

func (f *fixture) writeRepoConfig(t *testing.T, content string) {
	t.Helper()
	writeFile(t, f.configSource(), content, 0644)
}

// installBinary places a shell script at node_modules/.bin/codex.
func (f *fixture) installBinary(t *testing.T, body string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fakes require a POSIX shell")
	}
	writeFile(t, filepath.Join(f.root, "node_modules", ".bin", "codex"), "#!/bin/sh\n"+body+"\n", 0755)
}

// runner builds the standard runner with node never found on PATH, so
// resolution always lands on the bin shim.
func (f *fixture) runner(t *testing.T) (*Runner, *observer.ObservedLogs) {
	t.Helper()
	lg, logs := newObservedLogger()
	r, err := New(f.settings, lg, Options{Getenv: f.getenv, LookPath: noLookPath})
	require.NoError(t, err)
	return r, logs
}

// homeFiles lists every regular file under the tool home.
func (f *fixture) homeFiles(t *testing.T) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(f.home, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func noLookPath(file string) (string, error) {
	return "", errors.Errorf("%s: executable file not found in $PATH", file)
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func assertPerm(t *testing.T, path string, want os.FileMode) {
	t.Helper()
	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, want, info.Mode().Perm(), "mode of %s", path)
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "expected %s not to exist", path)
}
