package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/engine"
	"github.com/agbru/bigcalc/internal/logging"
)

// REPLConfig holds the settings of an interactive session.
type REPLConfig struct {
	// DefaultEngine is the registry name used until "engine" changes it.
	DefaultEngine string
	// Timeout bounds each computation.
	Timeout time.Duration
	// Verbose prints long results in full.
	Verbose bool
	// Details prints timing and digit counts after each result.
	Details bool
}

// REPL is an interactive calculator session. Each line is one operation;
// errors are printed as "Error: <message>" and the session continues.
type REPL struct {
	config  REPLConfig
	factory engine.Factory
	current string
	logger  logging.Logger
	in      io.Reader
	out     io.Writer
}

// NewREPL creates a session over the engines of factory. An empty or
// unknown DefaultEngine selects the first registered engine.
func NewREPL(factory engine.Factory, config REPLConfig) *REPL {
	current := config.DefaultEngine
	names := factory.List()
	if !containsName(names, current) && len(names) > 0 {
		current = names[0]
	}
	return &REPL{
		config:  config,
		factory: factory,
		current: current,
		logger:  logging.NewNopLogger(),
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// SetLogger sets the logger receiving a debug event per evaluated line.
func (r *REPL) SetLogger(l logging.Logger) { r.logger = l }

// Start runs the session until "exit", EOF or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintf(r.out, "\n%sGoodbye!%s\n", ColorGreen(), ColorReset())
			return
		}
		fmt.Fprint(r.out, ColorGreen()+"> "+ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			return
		}
		eof := errors.Is(err, io.EOF)

		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(ctx, line) {
				return
			}
		}
		if eof {
			fmt.Fprintf(r.out, "\n%sGoodbye!%s\n", ColorGreen(), ColorReset())
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "%sArbitrary Precision Calculator%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "Enter expressions or %sexit%s to quit, %shelp%s for commands\n",
		ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "Supported operations: +, -, *, /, %%, ^, !\n")
	fmt.Fprintf(r.out, "Example: %s123456789 * 987654321%s\n", ColorMagenta(), ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sExpressions:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %s<a> <op> <b>%s     - op is one of + - * / %% ^ (one operator per line)\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %s<n>!%s             - factorial\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %s<name> <a> [b]%s   - add, sub, mul, div, mod, pow, fact\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "%sCommands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %sengine <name>%s    - Switch engine (%s)\n", ColorYellow(), ColorReset(), strings.Join(r.factory.List(), ", "))
	fmt.Fprintf(r.out, "  %scompare <expr>%s   - Evaluate on every engine and check agreement\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sengines%s          - List engines\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sverbose%s          - Toggle full display of long results\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s           - Display current settings\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s             - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s      - Leave the calculator\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
}

// processCommand handles one input line. It returns false when the session
// should end.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "exit", "quit":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	case "help", "h", "?":
		r.printHelp()
	case "engines", "list":
		r.cmdList()
	case "engine":
		r.cmdEngine(args)
	case "status":
		r.cmdStatus()
	case "verbose":
		r.config.Verbose = !r.config.Verbose
		fmt.Fprintf(r.out, "Full display: %s%t%s\n", ColorGreen(), r.config.Verbose, ColorReset())
	case "compare":
		r.cmdCompare(ctx, strings.Join(args, " "))
	default:
		r.evaluate(ctx, input)
	}
	return true
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
}

// compute parses and evaluates input on e within the configured timeout.
func (r *REPL) compute(ctx context.Context, e engine.Engine, input string) (engine.Request, bigint.Int, time.Duration, error) {
	req, err := engine.ParseRequest(input)
	if err != nil {
		return req, bigint.Int{}, 0, err
	}
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}
	start := time.Now()
	result, err := e.Compute(ctx, req)
	return req, result, time.Since(start), err
}

func (r *REPL) evaluate(ctx context.Context, input string) {
	e, err := r.factory.Get(r.current)
	if err != nil {
		r.printError(err)
		return
	}
	req, result, duration, err := r.compute(ctx, e, input)
	if err != nil {
		r.logger.Debug("evaluation failed", logging.String("input", input), logging.Err(err))
		r.printError(err)
		return
	}
	r.logger.Debug("evaluated", logging.String("input", input), logging.String("engine", r.current))
	DisplayResult(req, result, e.Name(), duration, r.config.Verbose, r.config.Details, r.out)
}

func (r *REPL) cmdCompare(ctx context.Context, input string) {
	if input == "" {
		fmt.Fprintf(r.out, "%sUsage: compare <expression>%s\n", ColorRed(), ColorReset())
		return
	}
	var first *bigint.Int
	for _, name := range r.factory.List() {
		e, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		_, result, duration, err := r.compute(ctx, e, input)
		if err != nil {
			fmt.Fprintf(r.out, "  %s%-10s%s %sError: %v%s\n", ColorYellow(), name, ColorReset(), ColorRed(), err, ColorReset())
			continue
		}
		status := ColorGreen() + "✓" + ColorReset()
		if first == nil {
			first = &result
		} else if !result.Equal(*first) {
			status = ColorRed() + "✗ MISMATCH" + ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-10s%s %s%10s%s %s\n", ColorYellow(), name, ColorReset(),
			ColorCyan(), FormatExecutionDuration(duration), ColorReset(), status)
	}
	if first != nil {
		value, _ := abbreviate(*first)
		if r.config.Verbose {
			value = first.String()
		}
		fmt.Fprintf(r.out, "= %s%s%s\n", ColorGreen(), value, ColorReset())
	}
}

func (r *REPL) cmdEngine(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: engine <name>%s\n", ColorRed(), ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	e, err := r.factory.Get(name)
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown engine: %s%s\n", ColorRed(), name, ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(r.factory.List(), ", "))
		return
	}
	r.current = name
	fmt.Fprintf(r.out, "Engine changed to: %s%s%s\n", ColorGreen(), e.Name(), ColorReset())
}

func (r *REPL) cmdList() {
	for _, name := range r.factory.List() {
		e, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		marker := "  "
		if name == r.current {
			marker = ColorGreen() + "► " + ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ColorYellow(), name, ColorReset(), e.Name())
	}
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "  Engine:   %s%s%s\n", ColorCyan(), r.current, ColorReset())
	fmt.Fprintf(r.out, "  Timeout:  %s%s%s\n", ColorCyan(), r.config.Timeout, ColorReset())
	fmt.Fprintf(r.out, "  Verbose:  %s%t%s\n", ColorCyan(), r.config.Verbose, ColorReset())
	fmt.Fprintf(r.out, "  Details:  %s%t%s\n", ColorCyan(), r.config.Details, ColorReset())
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
