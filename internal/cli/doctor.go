package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/minhhai2209/broker-gpt-2/internal/bootstrap"
	"github.com/minhhai2209/broker-gpt-2/internal/config"
	"github.com/minhhai2209/broker-gpt-2/internal/entrypoint"
	"github.com/minhhai2209/broker-gpt-2/internal/platform"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment without changing it",
	Long: `Report what the bootstrap would find: the repository configuration,
the tool home and the files in it, the credential variable and the local
CLI entrypoint. Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(globals)
		if err != nil {
			return err
		}
		return runDoctor(cmd.OutOrStdout(), s, os.Getenv, exec.LookPath)
	},
}

// doctorReport accumulates check lines and the worst exit code seen.
type doctorReport struct {
	w    io.Writer
	code int
}

func (r *doctorReport) ok(format string, args ...any) {
	fmt.Fprintf(r.w, "[ OK ] "+format+"\n", args...)
}

func (r *doctorReport) warn(format string, args ...any) {
	fmt.Fprintf(r.w, "[WARN] "+format+"\n", args...)
}

func (r *doctorReport) miss(code int, format string, args ...any) {
	fmt.Fprintf(r.w, "[MISS] "+format+"\n", args...)
	// Missing configuration outranks everything else.
	if r.code != bootstrap.ExitMissingConfig {
		r.code = code
	}
}

func runDoctor(w io.Writer, s *config.Settings, getenv config.Getenv, lookPath entrypoint.LookPathFunc) error {
	r := &doctorReport{w: w}

	probe := bootstrap.Probe(s.Probe.Reference, lookPath)
	r.ok("%s on %s", probe.GoVersion, probe.Platform)
	if s.Probe.Reference != "" {
		if probe.Found() {
			r.ok("%s on PATH: %s", s.Probe.Reference, probe.Path)
		} else {
			r.warn("%s not on PATH (informational)", s.Probe.Reference)
		}
	}

	src := s.ConfigSourcePath()
	if ok, _ := platform.Exists(src); ok {
		r.ok("repository configuration: %s", src)
	} else {
		r.miss(bootstrap.ExitMissingConfig, "repository configuration: %s", src)
	}

	home, err := s.ToolHome(getenv)
	if err != nil {
		r.miss(bootstrap.ExitFailure, "tool home: %v", err)
	} else {
		checkHome(r, s, home)
	}

	if getenv(s.Credential.Env) != "" {
		r.ok("%s is set", s.Credential.Env)
	} else {
		r.warn("%s is not set", s.Credential.Env)
	}

	if c, err := entrypoint.Resolve(bootstrap.LayoutFor(s), lookPath); err != nil {
		r.miss(bootstrap.ExitFailure, "%s entrypoint not installed under %s (run npm install)", s.Tool, s.ProjectRoot)
	} else {
		r.ok("%s entrypoint (%s): %s", s.Tool, c.Kind, c)
	}

	if r.code != bootstrap.ExitOK {
		return &bootstrap.ExitError{Code: r.code, Message: "doctor found problems"}
	}
	return nil
}

func checkHome(r *doctorReport, s *config.Settings, home string) {
	if ok, _ := platform.Exists(home); !ok {
		r.warn("tool home %s does not exist yet", home)
		return
	}
	r.ok("tool home: %s", home)

	for _, p := range []string{s.ConfigTargetPath(home), s.CredentialTargetPath(home)} {
		if ok, _ := platform.Exists(p); !ok {
			r.warn("%s not present", p)
			continue
		}
		owner, err := platform.IsOwnerOnly(p)
		switch {
		case err != nil:
			r.warn("%s: %v", p, err)
		case !owner:
			r.warn("%s is readable by other users", p)
		default:
			r.ok("%s", p)
		}
	}
}
