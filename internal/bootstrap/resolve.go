package bootstrap

import (
	"context"
	"fmt"

	"github.com/minhhai2209/broker-gpt-2/internal/config"
	"github.com/minhhai2209/broker-gpt-2/internal/entrypoint"
	"go.uber.org/zap"
)

// LayoutFor builds the entrypoint search layout from settings.
func LayoutFor(s *config.Settings) entrypoint.Layout {
	return entrypoint.Layout{
		Script:      s.ScriptPath(),
		Interpreter: s.Entrypoint.Interpreter,
		BinDir:      s.BinDirPath(),
		BinName:     s.Entrypoint.BinName,
	}
}

// ResolveStep locates the locally installed CLI.
type ResolveStep struct {
	LookPath entrypoint.LookPathFunc
}

func (r *ResolveStep) Name() string { return "resolve" }

func (r *ResolveStep) Run(_ context.Context, st *State, lg *zap.Logger) Outcome {
	s := st.Settings
	cmd, err := entrypoint.Resolve(LayoutFor(s), r.LookPath)
	if err != nil {
		msg := fmt.Sprintf("resolving %s entrypoint", s.Tool)
		if entrypoint.IsNotFound(err) {
			msg = fmt.Sprintf("%s is not installed locally; run `npm install` in %s to install it as a project dependency",
				s.Tool, s.ProjectRoot)
		}
		return Fail(ExitFailure, msg, err)
	}

	st.Command = cmd
	lg.Info("entrypoint resolved",
		zap.String("kind", string(cmd.Kind)),
		zap.String("command", cmd.Path),
		zap.Strings("args", cmd.Args))
	return Continue()
}
