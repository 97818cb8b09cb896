package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/engine"
)

// OutputConfig selects how a one-shot result is reported.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints the bare value only.
	Quiet   bool
	Verbose bool
	Details bool
}

// WriteResultToFile writes the full result with a commented header to
// path, creating parent directories as needed.
func WriteResultToFile(path string, req engine.Request, result bigint.Int, engineName string, duration time.Duration) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# bigcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Engine: %s\n", engineName)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Expression: %s\n", FormatExpression(req))
	fmt.Fprintf(file, "# Digits: %d\n", result.Len())
	fmt.Fprintf(file, "\n%s\n", result)

	return file.Close()
}

// FormatQuietResult returns the bare decimal value.
func FormatQuietResult(result bigint.Int) string {
	return result.String()
}

// DisplayQuietResult prints the bare decimal value on its own line.
func DisplayQuietResult(out io.Writer, result bigint.Int) {
	fmt.Fprintln(out, FormatQuietResult(result))
}

// DisplayResultWithConfig reports a result according to config: quiet or
// full display, then an optional copy to OutputFile.
func DisplayResultWithConfig(out io.Writer, req engine.Request, result bigint.Int, engineName string, duration time.Duration, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result)
	} else {
		DisplayResult(req, result, engineName, duration, config.Verbose, config.Details, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(config.OutputFile, req, result, engineName, duration); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "%s✓ Result saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
		}
	}
	return nil
}
