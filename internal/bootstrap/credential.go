package bootstrap

import (
	"context"
	"os"

	"github.com/minhhai2209/broker-gpt-2/internal/config"
	"github.com/minhhai2209/broker-gpt-2/internal/platform"
	"go.uber.org/zap"
)

// CredentialStep writes the credential file from an environment variable.
// An existing file is never touched or read.
type CredentialStep struct {
	Getenv config.Getenv
}

func (c *CredentialStep) Name() string { return "credential" }

func (c *CredentialStep) Run(_ context.Context, st *State, lg *zap.Logger) Outcome {
	s := st.Settings
	target := s.CredentialTargetPath(st.ToolHome)
	lg = lg.With(zap.String("target", target), zap.String("env", s.Credential.Env))

	exists, err := platform.Exists(target)
	if err != nil {
		return Fail(ExitFailure, "checking credential file", err)
	}
	if exists {
		lg.Info("credential file already present, leaving it untouched")
		return Continue()
	}

	getenv := c.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	value := getenv(s.Credential.Env)
	if value == "" {
		lg.Info("credential variable not set, skipping credential file")
		return Continue()
	}

	if err := platform.WriteFileSecure(target, []byte(value), platform.FilePermSecure); err != nil {
		return Fail(ExitFailure, "writing credential file", err)
	}
	lg.Info("credential file written", zap.Int("bytes", len(value)))
	return Continue()
}
