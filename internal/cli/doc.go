// Package cli defines the Cobra command tree for broker-postinstall. The root
// command runs the bootstrap; doctor, settings and version are read-only
// helpers. Command implementations delegate to internal packages and only
// handle flags, output and exit status mapping.
package cli
