package cli

import (
	"io"

	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective settings",
	Long: `Print the settings the bootstrap would run with, after defaults, the
settings file, environment overrides and flags have been applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSettings(cmd.OutOrStdout(), globals)
	},
}

func printSettings(w io.Writer, o globalOptions) error {
	s, err := loadSettings(o)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return errors.Annotate(err, "encoding settings")
	}
	return errors.Trace(enc.Close())
}
