package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minhhai2209/broker-gpt-2/internal/bootstrap"
	"github.com/minhhai2209/broker-gpt-2/internal/branding"
	"github.com/minhhai2209/broker-gpt-2/internal/config"
	"github.com/minhhai2209/broker-gpt-2/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	ProjectRoot  string
	SettingsFile string
	LogLevel     string
}

var globals globalOptions

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globals.ProjectRoot, "project-root", "", "Repository checkout to bootstrap (default: working directory)")
	flags.StringVar(&globals.SettingsFile, "settings", "", "Settings file (default: <project-root>/"+branding.SettingsFile()+")")
	flags.StringVar(&globals.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` postinstall bootstrap.

Provisions the codex configuration from the repository into the tool home,
writes the credential file from CODEX_AUTH_JSON when it does not exist yet,
and verifies the locally installed CLI answers a version query.

Settings come from ` + branding.SettingsFile() + ` at the project root and can be
overridden per key from the environment, e.g. ` + branding.EnvVar("log_level") + `=debug.

Exit status: 0 on success, 2 when the repository configuration is missing,
the CLI's own status when the version query fails, 1 for anything else.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBootstrap(cmd.Context(), globals, cmd.OutOrStdout())
	},
}

// Execute runs the root command with build info injected via ldflags.
// Errors not already reported by the bootstrap logger are printed to stderr.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(ctx)
	var exitErr *bootstrap.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "[%s] error: %v\n", branding.LogPrefix(), err)
	}
	return err
}

// loadSettings applies the persistent flags on top of the settings sources.
func loadSettings(o globalOptions) (*config.Settings, error) {
	s, err := config.Load(config.LoadOptions{
		ProjectRoot:  o.ProjectRoot,
		SettingsFile: o.SettingsFile,
	})
	if err != nil {
		return nil, err
	}
	if o.LogLevel != "" {
		s.Log.Level = o.LogLevel
	}
	return s, nil
}

// runBootstrap loads settings, builds the logger and runs the five steps.
func runBootstrap(ctx context.Context, o globalOptions, out io.Writer) error {
	s, err := loadSettings(o)
	if err != nil {
		return err
	}

	lg, err := logging.New(logging.Options{Level: s.Log.Level, Format: s.Log.Format, Output: out})
	if err != nil {
		return err
	}
	defer lg.Sync() //nolint:errcheck

	r, err := bootstrap.New(s, lg, bootstrap.Options{})
	if err != nil {
		return err
	}
	return r.Run(ctx).Error()
}
