// Package cli implements the terminal front ends of bigcalc: the one-shot
// result display, the progress spinner, the interactive REPL and shell
// completion scripts.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/ui"
)

// FormatExecutionDuration shows microseconds below a millisecond,
// milliseconds below a second and the default form otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// TruncationLimit is the digit count above which numbers are shortened
	// on the terminal unless -v is given.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when
	// a number is shortened.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the engine progress bar.
	ProgressBarWidth = 30
)

// Color helpers forward to the active ui theme.

func ColorReset() string     { return ui.ColorReset() }
func ColorRed() string       { return ui.ColorRed() }
func ColorGreen() string     { return ui.ColorGreen() }
func ColorYellow() string    { return ui.ColorYellow() }
func ColorBlue() string      { return ui.ColorBlue() }
func ColorMagenta() string   { return ui.ColorMagenta() }
func ColorCyan() string      { return ui.ColorCyan() }
func ColorBold() string      { return ui.ColorBold() }
func ColorUnderline() string { return ui.ColorUnderline() }

// Spinner abstracts the terminal spinner so tests can substitute a fake.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState counts finished engines. Operations are not incremental, so
// progress is the fraction of engines that have returned.
type ProgressState struct {
	done  []bool
	count int
	start time.Time
}

// NewProgressState tracks numEngines engines starting now.
func NewProgressState(numEngines int) *ProgressState {
	return &ProgressState{done: make([]bool, numEngines), start: time.Now()}
}

// MarkDone records that engine index has finished. Out-of-range and
// repeated indices are ignored.
func (ps *ProgressState) MarkDone(index int) {
	if index < 0 || index >= len(ps.done) || ps.done[index] {
		return
	}
	ps.done[index] = true
	ps.count++
}

// Done returns the number of finished engines.
func (ps *ProgressState) Done() int { return ps.count }

// Fraction returns the finished share in [0, 1].
func (ps *ProgressState) Fraction() float64 {
	if len(ps.done) == 0 {
		return 0
	}
	return float64(ps.count) / float64(len(ps.done))
}

// Elapsed returns the time since the state was created.
func (ps *ProgressState) Elapsed() time.Duration { return time.Since(ps.start) }

// progressBar renders progress (clamped to [0, 1]) as a bar of length runes.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

func progressSuffix(ps *ProgressState, total int) string {
	elapsed := ps.Elapsed().Round(100 * time.Millisecond)
	if total == 1 {
		return fmt.Sprintf(" Computing... %s", elapsed)
	}
	return fmt.Sprintf(" Engines: %d/%d [%s] %s", ps.Done(), total, progressBar(ps.Fraction(), ProgressBarWidth), elapsed)
}

// DisplayProgress shows a spinner while engines run. It receives the index
// of each engine as it finishes on doneChan and returns, after clearing the
// spinner, once doneChan is closed. With several engines a final summary
// line is printed.
func DisplayProgress(wg *sync.WaitGroup, doneChan <-chan int, numEngines int, out io.Writer) {
	defer wg.Done()
	if numEngines <= 0 {
		for range doneChan {
		}
		return
	}

	state := NewProgressState(numEngines)
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(state, numEngines))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case idx, ok := <-doneChan:
			if !ok {
				s.Stop()
				if numEngines > 1 {
					fmt.Fprintf(out, "Engines: %d/%d [%s] in %s\n", state.Done(), numEngines,
						progressBar(state.Fraction(), ProgressBarWidth), FormatExecutionDuration(state.Elapsed()))
				}
				return
			}
			state.MarkDone(idx)
			s.UpdateSuffix(progressSuffix(state, numEngines))
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(state, numEngines))
		}
	}
}

// abbreviate shortens the decimal form of x to its first and last
// DisplayEdges digits when it has more than TruncationLimit digits.
func abbreviate(x bigint.Int) (string, bool) {
	s := x.String()
	if x.Len() <= TruncationLimit {
		return s, false
	}
	sign := ""
	if x.IsNegative() {
		sign, s = "-", s[1:]
	}
	return sign + s[:DisplayEdges] + "..." + s[len(s)-DisplayEdges:], true
}

// FormatExpression renders req with long operands shortened.
func FormatExpression(req engine.Request) string {
	a, _ := abbreviate(req.A)
	if req.Op.Unary() {
		return a + req.Op.Symbol()
	}
	b, _ := abbreviate(req.B)
	return a + " " + req.Op.Symbol() + " " + b
}

// DisplayResult prints "expr = value", shortening long values unless
// verbose is set. details adds engine, timing and size information.
func DisplayResult(req engine.Request, result bigint.Int, engineName string, duration time.Duration, verbose, details bool, out io.Writer) {
	value, truncated := result.String(), false
	if !verbose {
		value, truncated = abbreviate(result)
	}
	fmt.Fprintf(out, "%s = %s%s%s\n", FormatExpression(req), ColorGreen(), value, ColorReset())
	if truncated {
		fmt.Fprintf(out, "(%s digits, truncated; use %s-v%s to display the full value)\n",
			formatNumberString(fmt.Sprint(result.Len())), ColorYellow(), ColorReset())
	}

	if !details {
		return
	}
	durationStr := FormatExecutionDuration(duration)
	if duration == 0 {
		durationStr = "< 1µs"
	}
	fmt.Fprintf(out, "\n%s--- Details ---%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "Engine           : %s%s%s\n", ColorCyan(), engineName, ColorReset())
	fmt.Fprintf(out, "Calculation time : %s%s%s\n", ColorGreen(), durationStr, ColorReset())
	if req.Op.Unary() {
		fmt.Fprintf(out, "Operand digits   : %s%s%s\n", ColorCyan(), formatNumberString(fmt.Sprint(req.A.Len())), ColorReset())
	} else {
		fmt.Fprintf(out, "Operand digits   : %s%s%s and %s%s%s\n",
			ColorCyan(), formatNumberString(fmt.Sprint(req.A.Len())), ColorReset(),
			ColorCyan(), formatNumberString(fmt.Sprint(req.B.Len())), ColorReset())
	}
	fmt.Fprintf(out, "Result digits    : %s%s%s\n", ColorCyan(), formatNumberString(fmt.Sprint(result.Len())), ColorReset())
}

// formatNumberString inserts thousand separators into a decimal string.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
