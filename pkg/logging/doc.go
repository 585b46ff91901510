// Package logging provides a thin slog wrapper that tags every entry with
// the subsystem it came from. The generator core never logs; only the CLI
// glue does.
package logging
