// Package logging builds the process-wide structured logger.
//
// All components log through log/slog; this package only owns the
// translation from configuration (level and format strings) to a
// configured slog handler.
package logging
