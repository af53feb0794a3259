// Package bootstrap implements the postinstall routine as an ordered chain of
// steps: environment probe, credential provisioning, configuration
// provisioning, local entrypoint resolution and verification. Each step
// returns an Outcome; the Runner stops at the first failure and reports the
// exit code the process should terminate with.
//
// Before any step runs, steps that declare required inputs are given a
// read-only preflight, so a missing repository configuration ends the run
// before anything is written.
package bootstrap
