// Package config turns command-line flags and BIGCALC_* environment
// variables into an AppConfig and checks it for consistency. Flags take
// precedence over the environment, which takes precedence over defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/ui"
)

// EnvPrefix is the prefix of every environment variable read by bigcalc.
const EnvPrefix = "BIGCALC_"

// Default configuration values.
const (
	DefaultEngine   = "digits"
	DefaultTimeout  = 1 * time.Minute
	DefaultPort     = "8080"
	DefaultLogLevel = "warn"
	DefaultTheme    = "dark"
	// DefaultMaxDigits bounds operand length in server mode. Zero disables
	// the bound.
	DefaultMaxDigits = 0
	// AllEngines runs the expression on every registered engine and
	// compares the results.
	AllEngines = "all"
)

// AppConfig holds the parsed configuration of one bigcalc invocation.
type AppConfig struct {
	// Engine names the arithmetic engine, or AllEngines.
	Engine string
	// Timeout bounds a single computation.
	Timeout time.Duration
	// Verbose prints the full result even when it is very long.
	Verbose bool
	// Details adds operand sizes and timing to the report.
	Details bool
	JSONOutput bool
	ServerMode bool
	Port       string
	// NoColor disables ANSI colors. NO_COLOR is honoured as well.
	NoColor bool
	// Theme selects the color theme (dark, light or none).
	Theme string
	// OutputFile, if set, receives the result.
	OutputFile string
	// Quiet prints only the result, for scripts.
	Quiet       bool
	Interactive bool
	// Completion names a shell whose completion script should be printed.
	Completion string
	// MaxDigits rejects operands longer than this many digits (0 = no limit).
	MaxDigits int
	// LogLevel is the zerolog level name.
	LogLevel string
	// Args are the positional arguments that form the expression.
	Args []string
}

// Validate checks the configuration against the registered engine names.
func (c AppConfig) Validate(availableEngines []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.MaxDigits < 0 {
		return apperrors.NewConfigError("max-digits cannot be negative: %d", c.MaxDigits)
	}
	if c.Engine != AllEngines && !contains(availableEngines, c.Engine) {
		return apperrors.NewConfigError("unrecognized engine: '%s'. Valid engines are: '%s' or [%s]",
			c.Engine, AllEngines, strings.Join(availableEngines, ", "))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, ok := ui.LookupTheme(c.Theme); !ok {
		return apperrors.NewConfigError("unknown theme '%s'. Valid themes are: [%s]",
			c.Theme, strings.Join(ui.ThemeNames(), ", "))
	}
	if c.Quiet && c.JSONOutput {
		return apperrors.NewConfigError("-quiet and -json are mutually exclusive")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ParseConfig parses args (typically os.Args[1:]) into an AppConfig, applies
// environment overrides and validates the result. Parse errors and usage go
// to errorWriter.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableEngines []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	engineHelp := fmt.Sprintf("Arithmetic engine: '%s' or one of [%s]; '%s' cross-checks every engine.",
		DefaultEngine, strings.Join(availableEngines, ", "), AllEngines)

	config := AppConfig{}
	fs.StringVar(&config.Engine, "engine", DefaultEngine, engineHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for one computation.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full value of the result (can be very long).")
	fs.BoolVar(&config.Details, "d", false, "Display operand sizes, timing and engine details.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme: dark, light or none.")
	fs.StringVar(&config.OutputFile, "output", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Reject operands longer than this many digits (0 for no limit).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: "+strings.Join(logging.Levels, ", ")+".")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	config.Args = fs.Args()

	applyEnvOverrides(&config, fs)

	config.Engine = strings.ToLower(config.Engine)
	config.Theme = strings.ToLower(config.Theme)
	if err := config.Validate(availableEngines); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errInvalidConfig, err)
	}
	return config, nil
}

var errInvalidConfig = errors.New("invalid configuration")
