// Package logging provides leveled, subsystem-tagged logging for bizlink.
//
// It is a thin layer over the standard slog package: a single process-wide
// logger initialized once at startup via InitForCLI, and package-level
// Debug/Info/Warn/Error functions that tag each entry with a subsystem name
// (e.g. "OAuth", "TokenStore", "Config") so log output can be filtered by
// component.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("OAuth", "token refreshed for service=%s", service)
//	logging.Error("TokenStore", err, "failed to persist tokens")
//
// # Security
//
// Access tokens, refresh tokens and client secrets must never be passed to
// any logging function. When a potentially sensitive identifier needs to
// appear in a log line, truncate it first with TruncateSecret.
package logging
