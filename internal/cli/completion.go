package cli

import (
	"fmt"
	"io"
	"strings"
)

// completionFlag describes one flag for the completion generators. values
// is the fixed candidate list for its argument; file marks a path argument.
type completionFlag struct {
	name   string
	desc   string
	values []string
	file   bool
	takes  bool
}

// Shells lists the shells GenerateCompletion supports.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

func completionFlags(engines []string) []completionFlag {
	engineValues := append(append([]string{}, engines...), "all")
	return []completionFlag{
		{name: "engine", desc: "Arithmetic engine", values: engineValues, takes: true},
		{name: "timeout", desc: "Maximum execution time", values: []string{"10s", "1m", "5m", "30m"}, takes: true},
		{name: "v", desc: "Display the full result"},
		{name: "d", desc: "Show engine and timing details"},
		{name: "details", desc: "Show engine and timing details"},
		{name: "json", desc: "Output in JSON format"},
		{name: "server", desc: "Start HTTP server mode"},
		{name: "port", desc: "Server port", values: []string{"8080", "3000", "9000"}, takes: true},
		{name: "no-color", desc: "Disable colored output"},
		{name: "theme", desc: "Color theme", values: []string{"dark", "light", "none"}, takes: true},
		{name: "o", desc: "Output file path", file: true, takes: true},
		{name: "output", desc: "Output file path", file: true, takes: true},
		{name: "q", desc: "Print only the result"},
		{name: "quiet", desc: "Print only the result"},
		{name: "interactive", desc: "Start interactive REPL mode"},
		{name: "completion", desc: "Generate completion script", values: Shells, takes: true},
		{name: "max-digits", desc: "Maximum operand length", values: []string{"0", "1000", "100000"}, takes: true},
		{name: "log-level", desc: "Log level", values: []string{"debug", "info", "warn", "error"}, takes: true},
		{name: "version", desc: "Show version information"},
		{name: "help", desc: "Show help message"},
	}
}

// GenerateCompletion writes a completion script for shell to out. engines
// are offered as values of -engine.
func GenerateCompletion(out io.Writer, shell string, engines []string) error {
	flags := completionFlags(engines)
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(flags)
	case "zsh":
		script = zshCompletion(flags)
	case "fish":
		script = fishCompletion(flags)
	case "powershell", "ps":
		script = powerShellCompletion(flags)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(Shells, ", "))
	}
	_, err := io.WriteString(out, script)
	return err
}

func bashCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("# Bash completion script for bigcalc\n# Add this to your ~/.bashrc or ~/.bash_completion\n\n")
	b.WriteString("_bigcalc_completions() {\n")
	b.WriteString("    local cur prev opts\n    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = "-" + f.name
	}
	fmt.Fprintf(&b, "    opts=\"%s\"\n\n", strings.Join(names, " "))
	b.WriteString("    case \"${prev}\" in\n")
	for _, f := range flags {
		switch {
		case f.file:
			fmt.Fprintf(&b, "        -%s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", f.name)
		case len(f.values) > 0:
			fmt.Fprintf(&b, "        -%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				f.name, strings.Join(f.values, " "))
		}
	}
	b.WriteString("    esac\n\n")
	b.WriteString("    if [[ \"${cur}\" == -* ]]; then\n        COMPREPLY=( $(compgen -W \"${opts}\" -- \"${cur}\") )\n    fi\n")
	b.WriteString("}\n\ncomplete -F _bigcalc_completions bigcalc\n")
	return b.String()
}

func zshCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("#compdef bigcalc\n\n# Zsh completion script for bigcalc\n# Place this file in a directory of $fpath\n\n")
	b.WriteString("_bigcalc() {\n    _arguments -s \\\n")
	for i, f := range flags {
		spec := fmt.Sprintf("        '-%s[%s]", f.name, f.desc)
		switch {
		case f.file:
			spec += ":file:_files"
		case len(f.values) > 0:
			spec += fmt.Sprintf(":%s:(%s)", f.name, strings.Join(f.values, " "))
		case f.takes:
			spec += ":" + f.name + ":"
		}
		spec += "'"
		if i < len(flags)-1 {
			spec += " \\"
		}
		b.WriteString(spec + "\n")
	}
	b.WriteString("}\n\n_bigcalc \"$@\"\n")
	return b.String()
}

func fishCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("# Fish completion script for bigcalc\n# Save as ~/.config/fish/completions/bigcalc.fish\n\n")
	b.WriteString("complete -c bigcalc -f\n")
	for _, f := range flags {
		// fish treats single-letter flags as short options.
		opt := "-o " + f.name
		if len(f.name) == 1 {
			opt = "-s " + f.name
		}
		line := fmt.Sprintf("complete -c bigcalc %s -d '%s'", opt, f.desc)
		switch {
		case f.file:
			line += " -rF"
		case len(f.values) > 0:
			line += fmt.Sprintf(" -xa '%s'", strings.Join(f.values, " "))
		case f.takes:
			line += " -x"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func powerShellCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("# PowerShell completion script for bigcalc\n# Add this to your $PROFILE\n\n")
	b.WriteString("Register-ArgumentCompleter -CommandName 'bigcalc' -Native -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $values = @{\n")
	for _, f := range flags {
		if len(f.values) == 0 {
			continue
		}
		quoted := make([]string, len(f.values))
		for i, v := range f.values {
			quoted[i] = "'" + v + "'"
		}
		fmt.Fprintf(&b, "        '-%s' = @(%s)\n", f.name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n    $options = @(\n")
	for _, f := range flags {
		fmt.Fprintf(&b, "        @{Name = '-%s'; Description = '%s' }\n", f.name, f.desc)
	}
	b.WriteString("    )\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements\n")
	b.WriteString("    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }\n")
	b.WriteString("    if ($values.ContainsKey($prevElement)) {\n")
	b.WriteString("        $values[$prevElement] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n        }\n        return\n    }\n\n")
	b.WriteString("    $options | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)\n    }\n}\n")
	return b.String()
}
