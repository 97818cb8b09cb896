// Package testutil holds helpers shared by the bigcalc tests that inspect
// terminal output: the REPL transcript, the comparison table and the
// one-shot result lines.
package testutil

import "regexp"

// csiSequence matches the ANSI color and style sequences written by the ui
// themes (ESC '[' parameters final-letter).
var csiSequence = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes returns s without theme color codes, so assertions on CLI
// output hold whichever theme is active.
func StripAnsiCodes(s string) string {
	return csiSequence.ReplaceAllString(s, "")
}
