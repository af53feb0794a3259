// Package config loads the bootstrap settings: which CLI to prepare, where its
// configuration and credential files come from and go to, how to find its
// local entrypoint and how to verify it. Settings come from built-in defaults,
// an optional postinstall.yaml at the project root and BROKER_GPT_* environment
// variables, and are validated against an embedded JSON schema.
package config
