package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/engine"
)

// GetEnginesToRun resolves cfg.Engine to the engines to execute, in
// registry order. config.AllEngines selects every registered engine.
func GetEnginesToRun(cfg config.AppConfig, factory engine.Factory) []engine.Engine {
	if cfg.Engine == config.AllEngines {
		keys := factory.List()
		engines := make([]engine.Engine, 0, len(keys))
		for _, k := range keys {
			if e, err := factory.Get(k); err == nil {
				engines = append(engines, e)
			}
		}
		return engines
	}
	if e, err := factory.Get(cfg.Engine); err == nil {
		return []engine.Engine{e}
	}
	return nil
}

// PrintExecutionConfig describes the pending computation.
func PrintExecutionConfig(cfg config.AppConfig, req engine.Request, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing %s%s%s with a timeout of %s%s%s.\n",
		ColorMagenta(), FormatExpression(req), ColorReset(), ColorYellow(), cfg.Timeout, ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(), ColorCyan(), runtime.Version(), ColorReset())
}

// PrintExecutionMode states whether one engine runs or several are
// cross-checked.
func PrintExecutionMode(engines []engine.Engine, out io.Writer) {
	var modeDesc string
	if len(engines) > 1 {
		modeDesc = fmt.Sprintf("Cross-check of %d engines", len(engines))
	} else {
		modeDesc = fmt.Sprintf("Single computation with the %s%s%s engine",
			ColorGreen(), engines[0].Name(), ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
