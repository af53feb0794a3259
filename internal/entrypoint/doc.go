// Package entrypoint locates a locally installed CLI inside a project's
// dependency tree and runs it. A script entrypoint (for example an npm
// package's bin/codex.js) is run through its interpreter; otherwise the
// platform bin shim (node_modules/.bin/codex, codex.cmd on Windows) is run
// directly. Global installations on PATH are never considered.
package entrypoint
