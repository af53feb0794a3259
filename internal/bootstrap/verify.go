package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/minhhai2209/broker-gpt-2/internal/entrypoint"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// VerifyStep runs the resolved CLI with the version query and propagates
// its exit status.
type VerifyStep struct {
	Exec *entrypoint.Runner
}

func (v *VerifyStep) Name() string { return "verify" }

func (v *VerifyStep) Run(ctx context.Context, st *State, lg *zap.Logger) Outcome {
	if st.Command == nil {
		return Fail(ExitFailure, "no entrypoint to verify", errors.New("verify ran before resolve"))
	}
	s := st.Settings
	args := s.Verify.Args

	if s.Verify.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Verify.Timeout)
		defer cancel()
	}

	runner := v.Exec
	if runner == nil {
		runner = &entrypoint.Runner{Dir: s.ProjectRoot}
	}

	lg.Info("running version query",
		zap.String("command", st.Command.Path),
		zap.Strings("args", append(append([]string{}, st.Command.Args...), args...)))
	out, err := runner.Run(ctx, st.Command, args...)

	fields := []zap.Field{
		zap.Int("exitCode", out.ExitCode),
		zap.Duration("duration", out.Duration),
		zap.String("stdout", strings.TrimSpace(out.Stdout)),
		zap.String("stderr", strings.TrimSpace(out.Stderr)),
	}
	lg.Info("version query finished", fields...)

	if err != nil {
		return Fail(ExitFailure, fmt.Sprintf("could not run %s", st.Command), err)
	}
	if !out.Exited() {
		return Fail(ExitFailure, fmt.Sprintf("%s was terminated before exiting", st.Command), nil)
	}
	if out.ExitCode != 0 {
		return Fail(out.ExitCode, fmt.Sprintf("%s exited with status %d", st.Command, out.ExitCode), nil)
	}

	text := out.Stdout
	if strings.TrimSpace(text) == "" {
		text = out.Stderr
	}
	version, err := entrypoint.CheckMinimum(text, s.Verify.MinVersion)
	if err != nil {
		return Fail(ExitFailure, fmt.Sprintf("%s version check failed", s.Tool), err)
	}

	if version != nil {
		lg.Info("cli verified", zap.String("tool", s.Tool), zap.String("version", version.String()))
	} else {
		lg.Info("cli verified", zap.String("tool", s.Tool))
	}
	return Continue()
}
