package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/ui"
	"github.com/agbru/bigcalc/pkg/models"
)

// Application is one bigcalc invocation: its configuration and the
// engines it can run.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides the arithmetic engines.
	Factory engine.Factory
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
	// In is the REPL input (os.Stdin when nil).
	In io.Reader
}

// New creates an Application by parsing command-line arguments.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := engine.GlobalFactory()

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run dispatches to completion, server, REPL or one-shot mode. Without an
// expression on the command line the REPL starts.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if err := logging.SetGlobalLevel(a.Config.LogLevel); err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer()
	}
	if a.Config.Interactive || len(a.Config.Args) == 0 {
		return a.runREPL(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runServer() int {
	logger := logging.NewLogger(os.Stdout, "server")
	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(logger))
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	defaultEngine := a.Config.Engine
	if defaultEngine == config.AllEngines {
		defaultEngine = engine.DefaultEngineName
	}
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultEngine: defaultEngine,
		Timeout:       a.Config.Timeout,
		Verbose:       a.Config.Verbose,
		Details:       a.Config.Details,
	})
	repl.SetOutput(out)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	if a.Config.Verbose {
		repl.SetLogger(logging.NewConsoleLogger(a.ErrWriter, "repl", a.Config.NoColor))
	}
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runCalculate evaluates the command-line expression on the selected
// engines and reports the outcome.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	req, err := engine.ParseRequestArgs(a.Config.Args)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, nil)
	}
	if err := checkOperandLength(req, a.Config.MaxDigits); err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, nil)
	}

	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	engines := cli.GetEnginesToRun(a.Config, a.Factory)
	if len(engines) == 0 {
		fmt.Fprintf(a.ErrWriter, "No engine named %q is available.\n", a.Config.Engine)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, req, out)
		cli.PrintExecutionMode(engines, out)
	}

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	}

	results := orchestration.ExecuteCalculations(ctx, engines, req, progressOut)

	if a.Config.JSONOutput {
		return a.printJSONResults(results, req, out)
	}
	if a.Config.Quiet {
		return a.printQuietResult(results, req, out)
	}

	exitCode := orchestration.AnalyzeComparisonResults(results, req, a.Config, out)
	if exitCode != apperrors.ExitSuccess || a.Config.OutputFile == "" {
		return exitCode
	}
	best := findBestResult(results)
	if err := cli.WriteResultToFile(a.Config.OutputFile, req, best.Result, best.Name, best.Duration); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	fmt.Fprintf(out, "%s✓ Result saved to: %s%s%s\n",
		cli.ColorGreen(), cli.ColorCyan(), a.Config.OutputFile, cli.ColorReset())
	return exitCode
}

// checkOperandLength rejects operands longer than maxDigits (0 = no limit).
func checkOperandLength(req engine.Request, maxDigits int) error {
	if maxDigits <= 0 {
		return nil
	}
	if req.A.Len() > maxDigits {
		return apperrors.NewValidationError("a", fmt.Sprintf("operand exceeds %d digits", maxDigits), req.A.Len())
	}
	if !req.Op.Unary() && req.B.Len() > maxDigits {
		return apperrors.NewValidationError("b", fmt.Sprintf("operand exceeds %d digits", maxDigits), req.B.Len())
	}
	return nil
}

// printQuietResult prints the bare value of the fastest successful engine.
func (a *Application) printQuietResult(results []orchestration.CalculationResult, req engine.Request, out io.Writer) int {
	best := findBestResult(results)
	if best == nil {
		return apperrors.HandleCalculationError(firstError(results), 0, a.ErrWriter, nil)
	}
	if !consistent(results) {
		fmt.Fprintln(a.ErrWriter, "Error: the engines returned different results")
		return apperrors.ExitErrorMismatch
	}
	outputCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: true}
	if err := cli.DisplayResultWithConfig(out, req, best.Result, best.Name, best.Duration, outputCfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// printJSONResults writes a models.Report. The exit code follows the same
// rules as the text output.
func (a *Application) printJSONResults(results []orchestration.CalculationResult, req engine.Request, out io.Writer) int {
	report := models.Report{
		Expression: req.String(),
		Consistent: consistent(results),
		Results:    make([]models.Result, len(results)),
	}
	for i, res := range results {
		r := models.Result{
			Operation:  string(req.Op),
			Expression: report.Expression,
			Engine:     res.Name,
		}
		r.SetDuration(res.Duration)
		if res.Err != nil {
			r.Error = res.Err.Error()
		} else {
			r.Result = res.Result.String()
			r.Digits = res.Result.Len()
		}
		report.Results[i] = r
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return apperrors.ExitErrorGeneric
	}

	switch {
	case findBestResult(results) == nil:
		return apperrors.HandleCalculationError(firstError(results), 0, io.Discard, nil)
	case !report.Consistent:
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err means -h or -help was given.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var best *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}

func firstError(results []orchestration.CalculationResult) error {
	for _, res := range results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

// consistent reports whether every successful result has the same value.
func consistent(results []orchestration.CalculationResult) bool {
	best := findBestResult(results)
	if best == nil {
		return true
	}
	for _, res := range results {
		if res.Err == nil && !res.Result.Equal(best.Result) {
			return false
		}
	}
	return true
}
