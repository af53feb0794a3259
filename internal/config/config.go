package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minhhai2209/broker-gpt-2/internal/branding"
	"github.com/pingcap/errors"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Settings is the effective bootstrap configuration.
type Settings struct {
	// ProjectRoot is the repository checkout; relative paths resolve against it.
	ProjectRoot string `mapstructure:"project_root" yaml:"project_root" json:"project_root"`
	// Tool is the CLI being prepared. Used in log and remediation messages.
	Tool string `mapstructure:"tool" yaml:"tool" json:"tool"`
	// HomeEnv names the variable that overrides the tool home (e.g. CODEX_HOME).
	HomeEnv string `mapstructure:"home_env" yaml:"home_env" json:"home_env"`
	// HomeDir is the tool home under the user's home when HomeEnv is unset.
	HomeDir string `mapstructure:"home_dir" yaml:"home_dir" json:"home_dir"`

	Config     ConfigFile      `mapstructure:"config" yaml:"config" json:"config"`
	Credential CredentialFile  `mapstructure:"credential" yaml:"credential" json:"credential"`
	Entrypoint EntrypointPaths `mapstructure:"entrypoint" yaml:"entrypoint" json:"entrypoint"`
	Verify     VerifySettings  `mapstructure:"verify" yaml:"verify" json:"verify"`
	Probe      ProbeSettings   `mapstructure:"probe" yaml:"probe" json:"probe"`
	Log        LogSettings     `mapstructure:"log" yaml:"log" json:"log"`
}

// ConfigFile describes the repository file copied into the tool home.
type ConfigFile struct {
	Source string `mapstructure:"source" yaml:"source" json:"source"`
	Target string `mapstructure:"target" yaml:"target" json:"target"`
}

// CredentialFile describes the credential written from an environment variable.
type CredentialFile struct {
	Env    string `mapstructure:"env" yaml:"env" json:"env"`
	Target string `mapstructure:"target" yaml:"target" json:"target"`
}

// EntrypointPaths is the local dependency layout searched for the CLI.
type EntrypointPaths struct {
	Script      string `mapstructure:"script" yaml:"script" json:"script"`
	Interpreter string `mapstructure:"interpreter" yaml:"interpreter" json:"interpreter"`
	BinDir      string `mapstructure:"bin_dir" yaml:"bin_dir" json:"bin_dir"`
	BinName     string `mapstructure:"bin_name" yaml:"bin_name" json:"bin_name"`
}

// VerifySettings controls the version query run against the resolved CLI.
type VerifySettings struct {
	Args       []string `mapstructure:"args" yaml:"args" json:"args"`
	MinVersion string   `mapstructure:"min_version" yaml:"min_version" json:"min_version"`
	// Timeout of zero waits for the child indefinitely.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// ProbeSettings controls the diagnostic environment probe.
type ProbeSettings struct {
	Reference string `mapstructure:"reference" yaml:"reference" json:"reference"`
}

// LogSettings controls the logger.
type LogSettings struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// LoadOptions selects where settings are read from.
type LoadOptions struct {
	// ProjectRoot defaults to the working directory.
	ProjectRoot string
	// SettingsFile is an explicit settings path. When empty, the branding
	// settings file under ProjectRoot is read if it exists.
	SettingsFile string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tool", "codex")
	v.SetDefault("home_env", "CODEX_HOME")
	v.SetDefault("home_dir", ".codex")
	v.SetDefault("config.source", filepath.Join(".codex", "config.toml"))
	v.SetDefault("config.target", "config.toml")
	v.SetDefault("credential.env", "CODEX_AUTH_JSON")
	v.SetDefault("credential.target", "auth.json")
	v.SetDefault("entrypoint.script", filepath.Join("node_modules", "@openai", "codex", "bin", "codex.js"))
	v.SetDefault("entrypoint.interpreter", "node")
	v.SetDefault("entrypoint.bin_dir", filepath.Join("node_modules", ".bin"))
	v.SetDefault("entrypoint.bin_name", "codex")
	v.SetDefault("verify.args", []string{"--version"})
	v.SetDefault("verify.min_version", "")
	v.SetDefault("verify.timeout", time.Duration(0))
	v.SetDefault("probe.reference", "codex")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load builds the effective settings and validates them.
func Load(opts LoadOptions) (*Settings, error) {
	root := opts.ProjectRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Annotate(err, "resolving working directory")
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Annotatef(err, "resolving project root %s", root)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readSettingsFile(v, root, opts.SettingsFile); err != nil {
		return nil, err
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errors.Annotate(err, "decoding settings")
	}
	s.ProjectRoot = root

	result, err := Validate(s)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Issues: result.Issues}
	}
	return s, nil
}

// readSettingsFile merges the settings file into v. An explicit file must
// exist; the default one is optional.
func readSettingsFile(v *viper.Viper, root, explicit string) error {
	path := explicit
	if path == "" {
		path = filepath.Join(root, branding.SettingsFile())
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Annotatef(err, "reading settings file %s", path)
	}
	return nil
}

// Resolve returns p unchanged if absolute, otherwise joined to the project root.
func (s *Settings) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.ProjectRoot, p)
}
