// Package orchestration runs one request on several engines concurrently
// and reconciles their results.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/ui"
)

// CalculationResult is the outcome of one engine on one request.
type CalculationResult struct {
	// Name is the display name of the engine (e.g., "Decimal Digits").
	Name string
	// Result is the computed value. It is the zero Int if an error occurred.
	Result bigint.Int
	// Duration is the time taken to complete the operation.
	Duration time.Duration
	// Err contains any error that occurred during the operation.
	Err error
}

// ExecuteCalculations evaluates req on every engine concurrently and
// returns the results in engine order. Completion of each engine is reported
// to the progress display written to out.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - engines: The engines to execute.
//   - req: The operation and its operands.
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []CalculationResult: One result per engine.
func ExecuteCalculations(ctx context.Context, engines []engine.Engine, req engine.Request, out io.Writer) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(engines))
	doneChan := make(chan int, len(engines))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, doneChan, len(engines), out)

	for i, e := range engines {
		idx, eng := i, e
		g.Go(func() error {
			startTime := time.Now()
			res, err := eng.Compute(ctx, req)
			results[idx] = CalculationResult{
				Name: eng.Name(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			doneChan <- idx
			// Engine failures are reported per result, never through the group.
			return nil
		})
	}

	_ = g.Wait()
	close(doneChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults prints a summary table of results, checks that
// every successful engine produced the same value and displays it.
//
// Parameters:
//   - results: The results to analyze. The slice is sorted in place.
//   - req: The request that produced them.
//   - cfg: The application configuration.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: ExitSuccess, ExitErrorMismatch, or the exit code of the first
//     error when no engine succeeded.
func AnalyzeComparisonResults(results []CalculationResult, req engine.Request, cfg config.AppConfig, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var first *CalculationResult
	var firstError error
	successCount := 0

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sEngine%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for i := range results {
		res := &results[i]
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
			successCount++
			if first == nil {
				first = res
			}
		}
		duration := cli.FormatExecutionDuration(res.Duration)
		if res.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the operation.\n")
		return apperrors.HandleCalculationError(firstError, 0, out, cli.CLIColorProvider{})
	}

	for _, res := range results {
		if res.Err == nil && !res.Result.Equal(first.Result) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the results of the engines.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	cli.DisplayResult(req, first.Result, first.Name, first.Duration, cfg.Verbose, cfg.Details, out)
	return apperrors.ExitSuccess
}
