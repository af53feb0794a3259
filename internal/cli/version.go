package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/minhhai2209/broker-gpt-2/internal/branding"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion(cmd.OutOrStdout(), versionShort, versionJSON)
	},
}

func printVersion(w io.Writer, short, asJSON bool) error {
	switch {
	case short:
		fmt.Fprintln(w, buildVersion)
	case asJSON:
		out, err := json.MarshalIndent(map[string]string{
			"version": buildVersion,
			"commit":  buildCommit,
			"date":    buildDate,
		}, "", "  ")
		if err != nil {
			return errors.Annotate(err, "marshaling version info")
		}
		fmt.Fprintln(w, string(out))
	default:
		fmt.Fprintf(w, "%s version %s (commit: %s, built: %s)\n",
			branding.CLIName(), buildVersion, buildCommit, buildDate)
	}
	return nil
}
