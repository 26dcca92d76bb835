package vfs

import (
	"fmt"
	"log/slog"
)

// logWarnf logs a non-fatal warning. It reports startup temp-file cleanup
// failures, which are logged rather than returned.
func logWarnf(format string, args ...any) {
	slog.Warn(fmt.Sprintf(format, args...))
}
