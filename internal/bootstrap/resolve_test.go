package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/minhhai2209/broker-gpt-2/internal/entrypoint"
	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
)

func TestResolveStep_NotInstalled(t *testing.T) {
	f := newFixture(t)
	lg, _ := newObservedLogger()
	st := f.state()

	out := (&ResolveStep{LookPath: noLookPath}).Run(context.Background(), st, lg)
	require.Equal(t, ExitFailure, out.Code)
	require.Contains(t, out.Message, "npm install")
	require.Contains(t, out.Message, f.root)
	require.True(t, entrypoint.IsNotFound(out.Err))
	require.Nil(t, st.Command)
}

func TestResolveStep_Binary(t *testing.T) {
	f := newFixture(t)
	f.installBinary(t, `echo "codex-cli 0.39.0"`)
	lg, logs := newObservedLogger()
	st := f.state()

	out := (&ResolveStep{LookPath: noLookPath}).Run(context.Background(), st, lg)
	require.False(t, out.Failed())
	require.NotNil(t, st.Command)
	require.Equal(t, entrypoint.KindBinary, st.Command.Kind)
	require.Equal(t, filepath.Join(f.root, "node_modules", ".bin", "codex"), st.Command.Path)
	require.Equal(t, "binary", logs.FilterMessage("entrypoint resolved").All()[0].ContextMap()["kind"])
}

func TestResolveStep_ScriptUsesInterpreter(t *testing.T) {
	f := newFixture(t)
	script := filepath.Join(f.root, "node_modules", "@openai", "codex", "bin", "codex.js")
	writeFile(t, script, "console.log('codex-cli 0.39.0')\n", 0644)
	lookPath := func(file string) (string, error) {
		if file == "node" {
			return "/opt/node/bin/node", nil
		}
		return "", errors.Errorf("%s not found", file)
	}
	lg, _ := newObservedLogger()
	st := f.state()

	out := (&ResolveStep{LookPath: lookPath}).Run(context.Background(), st, lg)
	require.False(t, out.Failed())
	require.Equal(t, entrypoint.KindScript, st.Command.Kind)
	require.Equal(t, "/opt/node/bin/node", st.Command.Path)
	require.Equal(t, []string{script}, st.Command.Args)
}
