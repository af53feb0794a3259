package bootstrap

import (
	"context"
	"os"
	"time"

	"github.com/minhhai2209/broker-gpt-2/internal/config"
	"github.com/minhhai2209/broker-gpt-2/internal/entrypoint"
	"go.uber.org/zap"
)

// Step is one link of the bootstrap chain.
type Step interface {
	Name() string
	Run(ctx context.Context, st *State, lg *zap.Logger) Outcome
}

// Preflighter is implemented by steps with required inputs. Preflight must
// not write anything.
type Preflighter interface {
	Preflight(ctx context.Context, st *State, lg *zap.Logger) Outcome
}

// State is shared by the steps of one run.
type State struct {
	Settings *config.Settings
	ToolHome string

	// Probe is filled by ProbeStep, for diagnostics only.
	Probe *ProbeResult
	// Command is filled by ResolveStep and consumed by VerifyStep.
	Command *entrypoint.Command
}

// Result is the outcome of a whole run.
type Result struct {
	Code     int
	Step     string
	Message  string
	Err      error
	Duration time.Duration
}

// Error returns nil on success, otherwise an *ExitError carrying the code.
func (r Result) Error() error {
	if r.Code == ExitOK {
		return nil
	}
	return &ExitError{Code: r.Code, Message: r.Message, Err: r.Err}
}

// Options carries the process-level collaborators the steps use.
type Options struct {
	Getenv   config.Getenv
	LookPath entrypoint.LookPathFunc
}

// Runner executes an ordered list of steps.
type Runner struct {
	steps []Step
	state *State
	lg    *zap.Logger
}

// New builds the standard five-step runner for the given settings.
func New(s *config.Settings, lg *zap.Logger, opts Options) (*Runner, error) {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	home, err := s.ToolHome(opts.Getenv)
	if err != nil {
		return nil, err
	}
	st := &State{Settings: s, ToolHome: home}
	return NewWithSteps(st, lg, DefaultSteps(s, opts)...), nil
}

// DefaultSteps returns probe, credential, configuration, resolution and
// verification, in that order.
func DefaultSteps(s *config.Settings, opts Options) []Step {
	return []Step{
		&ProbeStep{LookPath: opts.LookPath},
		&CredentialStep{Getenv: opts.Getenv},
		&ConfigurationStep{},
		&ResolveStep{LookPath: opts.LookPath},
		&VerifyStep{Exec: &entrypoint.Runner{Dir: s.ProjectRoot}},
	}
}

// NewWithSteps builds a runner over an explicit step list.
func NewWithSteps(st *State, lg *zap.Logger, steps ...Step) *Runner {
	return &Runner{steps: steps, state: st, lg: lg}
}

// State returns the run state, for inspection after Run.
func (r *Runner) State() *State {
	return r.state
}

// Run executes all preflights, then all steps, stopping at the first failure.
func (r *Runner) Run(ctx context.Context) Result {
	start := time.Now()

	for _, step := range r.steps {
		p, ok := step.(Preflighter)
		if !ok {
			continue
		}
		lg := r.lg.With(zap.String("step", step.Name()), zap.String("phase", "preflight"))
		if out := p.Preflight(ctx, r.state, lg); out.Failed() {
			return r.fail(lg, step, out, start)
		}
	}

	for _, step := range r.steps {
		lg := r.lg.With(zap.String("step", step.Name()))
		stepStart := time.Now()
		lg.Debug("step started")
		out := step.Run(ctx, r.state, lg)
		if out.Failed() {
			return r.fail(lg, step, out, start)
		}
		lg.Debug("step finished", zap.Duration("duration", time.Since(stepStart)))
	}

	res := Result{Code: ExitOK, Duration: time.Since(start)}
	r.lg.Info("bootstrap completed", zap.Duration("duration", res.Duration))
	return res
}

func (r *Runner) fail(lg *zap.Logger, step Step, out Outcome, start time.Time) Result {
	res := Result{
		Code:     out.Code,
		Step:     step.Name(),
		Message:  out.Message,
		Err:      out.Err,
		Duration: time.Since(start),
	}
	fields := []zap.Field{
		zap.Int("exitCode", res.Code),
		zap.String("reason", res.Message),
	}
	if res.Err != nil {
		fields = append(fields, zap.Error(res.Err))
	}
	lg.Error("bootstrap failed", fields...)
	return res
}
