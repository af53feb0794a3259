package bootstrap

import (
	"context"
	"os"
	"os/exec"
	"runtime"

	"github.com/minhhai2209/broker-gpt-2/internal/entrypoint"
	"go.uber.org/zap"
)

// ProbeResult is the outcome of the best-effort reference lookup. It is only
// ever logged or displayed, never turned into a failure.
type ProbeResult struct {
	GoVersion  string
	Platform   string
	WorkingDir string
	Reference  string
	Path       string
	Err        error
}

// Found reports whether the reference executable was located.
func (p *ProbeResult) Found() bool {
	return p.Err == nil && p.Path != ""
}

// Probe collects environment diagnostics.
func Probe(reference string, lookPath entrypoint.LookPathFunc) *ProbeResult {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	res := &ProbeResult{
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Reference: reference,
	}
	res.WorkingDir, _ = os.Getwd()
	if reference != "" {
		res.Path, res.Err = lookPath(reference)
	}
	return res
}

// ProbeStep logs runtime, platform and path diagnostics. It never fails.
type ProbeStep struct {
	LookPath entrypoint.LookPathFunc
}

func (p *ProbeStep) Name() string { return "probe" }

func (p *ProbeStep) Run(_ context.Context, st *State, lg *zap.Logger) Outcome {
	res := Probe(st.Settings.Probe.Reference, p.LookPath)
	st.Probe = res

	lg.Info("environment",
		zap.String("go", res.GoVersion),
		zap.String("platform", res.Platform),
		zap.String("cwd", res.WorkingDir),
		zap.String("projectRoot", st.Settings.ProjectRoot),
		zap.String("toolHome", st.ToolHome))

	switch {
	case res.Reference == "":
	case res.Found():
		lg.Info("reference executable", zap.String("name", res.Reference), zap.String("path", res.Path))
	default:
		lg.Warn("reference executable not on PATH",
			zap.String("name", res.Reference), zap.String("error", res.Err.Error()))
	}
	return Continue()
}
