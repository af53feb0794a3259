// Package branding provides compile-time identity values for the postinstall
// bootstrap. The values are baked in from branding.yaml via //go:embed so a
// fork can rename the tool without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	EnvPrefix    string `yaml:"env_prefix"`
	SettingsFile string `yaml:"settings_file"`
	LogPrefix    string `yaml:"log_prefix"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:      "broker-postinstall",
			DisplayName:  "Broker GPT",
			Description:  "Prepare the local codex CLI, its configuration and credentials",
			EnvPrefix:    "BROKER_GPT",
			SettingsFile: "postinstall.yaml",
			LogPrefix:    "postinstall",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "broker-postinstall").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short command description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix for settings overrides.
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// SettingsFile returns the settings file name looked up at the project root.
func SettingsFile() string { load(); return defaults.SettingsFile }

// LogPrefix returns the logger name every log line carries.
func LogPrefix() string { load(); return defaults.LogPrefix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("log_level") → "BROKER_GPT_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
