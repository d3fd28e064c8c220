// Package logutil is Iridium's ambient logging surface: the same thin
// fmt-backed helper shape as the teacher's own logutil package, adapted to
// write to stderr instead of stdout. cmd/iridium writes compiled JS to
// stdout (§6's generated-code contract), so a diagnostic line landing there
// would corrupt piped or redirected output; stderr keeps the two streams
// separate without reaching for a structured logging dependency neither the
// teacher nor this module's domain needs.
package logutil

import (
	"fmt"
	"os"
)

// Log writes the given arguments to stderr, space-separated with a
// trailing newline — the same argument handling as fmt.Println.
func Log(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
}

// Logf formats according to a format specifier and writes the result to
// stderr.
func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
