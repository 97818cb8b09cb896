package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/bigcalc/internal/ui"
)

// setCustomUsage installs a colored usage function that also documents the
// expression syntax.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}
		out := fs.Output()

		fmt.Fprintf(out, "\n%sBig Integer Calculator%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Exact arithmetic on arbitrarily large signed integers.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s [flags] <a> <op> <b>     op is one of + - * / %% ^\n", fs.Name())
		fmt.Fprintf(out, "  %s [flags] <n>!\n", fs.Name())
		fmt.Fprintf(out, "  %s [flags] <add|sub|mul|div|mod|pow|fact> <a> [b]\n", fs.Name())
		fmt.Fprintf(out, "  %s -interactive | -server\n", fs.Name())
		fmt.Fprintf(out, "Use -- before an expression whose first operand is negative.\n\n")
		fmt.Fprintf(out, "%sFlags:%s\n", t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := "-" + f.Name
			if name != "" {
				flagSig += " " + name
			}
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEnvironment variables prefixed with %s override unset flags.\n\n", EnvPrefix)
	}
}
