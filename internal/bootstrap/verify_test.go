package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/minhhai2209/broker-gpt-2/internal/entrypoint"
	"github.com/stretchr/testify/require"
)

func resolvedState(t *testing.T, f *fixture, body string) *State {
	t.Helper()
	f.installBinary(t, body)
	st := f.state()
	st.Command = &entrypoint.Command{
		Path: filepath.Join(f.root, "node_modules", ".bin", "codex"),
		Kind: entrypoint.KindBinary,
	}
	return st
}

func TestVerifyStep_Success(t *testing.T) {
	f := newFixture(t)
	st := resolvedState(t, f, `[ "$1" = "--version" ] && echo "codex-cli 0.39.0"`)
	lg, logs := newObservedLogger()

	out := (&VerifyStep{}).Run(context.Background(), st, lg)
	require.False(t, out.Failed(), "outcome: %+v", out)

	finished := logs.FilterMessage("version query finished").All()
	require.Len(t, finished, 1)
	ctx := finished[0].ContextMap()
	require.Equal(t, int64(0), ctx["exitCode"])
	require.Equal(t, "codex-cli 0.39.0", ctx["stdout"])
	require.Contains(t, ctx, "duration")

	verified := logs.FilterMessage("cli verified").All()
	require.Len(t, verified, 1)
	require.Equal(t, "0.39.0", verified[0].ContextMap()["version"])
}

func TestVerifyStep_PropagatesExitStatus(t *testing.T) {
	f := newFixture(t)
	st := resolvedState(t, f, `echo "unsupported" >&2; exit 3`)
	lg, _ := newObservedLogger()

	out := (&VerifyStep{}).Run(context.Background(), st, lg)
	require.Equal(t, 3, out.Code)
}

func TestVerifyStep_SignalIsGenericFailure(t *testing.T) {
	f := newFixture(t)
	st := resolvedState(t, f, `kill -9 $$`)
	lg, _ := newObservedLogger()

	out := (&VerifyStep{}).Run(context.Background(), st, lg)
	require.Equal(t, ExitFailure, out.Code)
}

func TestVerifyStep_SpawnFailure(t *testing.T) {
	f := newFixture(t)
	st := f.state()
	st.Command = &entrypoint.Command{Path: filepath.Join(f.root, "missing-binary")}
	lg, _ := newObservedLogger()

	out := (&VerifyStep{}).Run(context.Background(), st, lg)
	require.Equal(t, ExitFailure, out.Code)
	require.Error(t, out.Err)
}

func TestVerifyStep_WithoutResolvedCommand(t *testing.T) {
	f := newFixture(t)
	lg, _ := newObservedLogger()

	out := (&VerifyStep{}).Run(context.Background(), f.state(), lg)
	require.Equal(t, ExitFailure, out.Code)
}

func TestVerifyStep_MinimumVersion(t *testing.T) {
	f := newFixture(t)
	st := resolvedState(t, f, `echo "codex-cli 0.19.4"`)
	lg, _ := newObservedLogger()

	f.settings.Verify.MinVersion = "0.19.0"
	require.False(t, (&VerifyStep{}).Run(context.Background(), st, lg).Failed())

	f.settings.Verify.MinVersion = "0.20.0"
	out := (&VerifyStep{}).Run(context.Background(), st, lg)
	require.Equal(t, ExitFailure, out.Code)
	require.Contains(t, out.Err.Error(), "older than required")
}

func TestVerifyStep_VersionOnStderr(t *testing.T) {
	f := newFixture(t)
	st := resolvedState(t, f, `echo "codex-cli 1.2.0" >&2`)
	f.settings.Verify.MinVersion = "1.0.0"
	lg, _ := newObservedLogger()

	require.False(t, (&VerifyStep{}).Run(context.Background(), st, lg).Failed())
}

func TestVerifyStep_Timeout(t *testing.T) {
	f := newFixture(t)
	st := resolvedState(t, f, `exec sleep 5`)
	f.settings.Verify.Timeout = 100 * time.Millisecond
	lg, _ := newObservedLogger()

	start := time.Now()
	out := (&VerifyStep{}).Run(context.Background(), st, lg)
	require.Equal(t, ExitFailure, out.Code)
	require.Less(t, time.Since(start), 5*time.Second)
}
