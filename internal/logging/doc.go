// Package logging configures slog for wicli.
//
// With --debug, JSON logs are written to ~/.wicli/logs/wicli.log through a
// size-rotating writer. Without it, only warnings reach stderr as text, so
// per-file read diagnostics stay visible during a normal search.
package logging
