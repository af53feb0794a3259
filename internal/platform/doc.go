// Package platform provides the cross-platform filesystem helpers the
// bootstrap steps use: owner-only writes, verbatim copies, permission
// management and platform-specific executable names. On Windows chmod is a
// no-op and local npm binaries carry a .cmd suffix.
package platform
