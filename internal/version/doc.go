// Package version exposes build metadata for timekeeper.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags. Labels feeds the build info metric.
package version
