package bootstrap

import (
	"context"
	"fmt"

	"github.com/minhhai2209/broker-gpt-2/internal/platform"
	"github.com/pingcap/errors"
	"go.uber.org/zap"
)

// ConfigurationStep copies the repository configuration into the tool home,
// overwriting whatever is there.
type ConfigurationStep struct{}

func (c *ConfigurationStep) Name() string { return "configuration" }

// Preflight fails with ExitMissingConfig when the repository file is absent.
func (c *ConfigurationStep) Preflight(_ context.Context, st *State, lg *zap.Logger) Outcome {
	src := st.Settings.ConfigSourcePath()
	exists, err := platform.Exists(src)
	if err != nil {
		return Fail(ExitFailure, "checking repository configuration", err)
	}
	if !exists {
		return Fail(ExitMissingConfig,
			fmt.Sprintf("required configuration %s is missing from the repository", src),
			errors.Errorf("%s does not exist", src))
	}
	lg.Debug("repository configuration present", zap.String("source", src))
	return Continue()
}

func (c *ConfigurationStep) Run(ctx context.Context, st *State, lg *zap.Logger) Outcome {
	// The file may have vanished since preflight.
	if out := c.Preflight(ctx, st, lg); out.Failed() {
		return out
	}

	src := st.Settings.ConfigSourcePath()
	dst := st.Settings.ConfigTargetPath(st.ToolHome)
	n, err := platform.CopyFile(src, dst, platform.FilePermSecure)
	if err != nil {
		return Fail(ExitFailure, "copying configuration", err)
	}
	lg.Info("configuration copied",
		zap.String("source", src), zap.String("target", dst), zap.Int64("bytes", n))
	return Continue()
}
