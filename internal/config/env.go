package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns defaultVal when the variable is unset or not an integer.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool accepts true/1/yes and false/0/no, case-insensitively.
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration accepts time.ParseDuration syntax ("30s", "1h30m").
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet reports whether any of names was given on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides fills every option not set on the command line from its
// environment variable:
//
//	BIGCALC_ENGINE, BIGCALC_TIMEOUT, BIGCALC_PORT, BIGCALC_OUTPUT,
//	BIGCALC_THEME, BIGCALC_LOG_LEVEL, BIGCALC_MAX_DIGITS, BIGCALC_SERVER,
//	BIGCALC_JSON, BIGCALC_VERBOSE, BIGCALC_DETAILS, BIGCALC_QUIET,
//	BIGCALC_INTERACTIVE, BIGCALC_NO_COLOR
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	strs := []struct {
		flags []string
		key   string
		dst   *string
	}{
		{[]string{"engine"}, "ENGINE", &config.Engine},
		{[]string{"port"}, "PORT", &config.Port},
		{[]string{"output", "o"}, "OUTPUT", &config.OutputFile},
		{[]string{"theme"}, "THEME", &config.Theme},
		{[]string{"log-level"}, "LOG_LEVEL", &config.LogLevel},
	}
	for _, s := range strs {
		if !isFlagSet(fs, s.flags...) {
			*s.dst = getEnvString(s.key, *s.dst)
		}
	}

	bools := []struct {
		flags []string
		key   string
		dst   *bool
	}{
		{[]string{"server"}, "SERVER", &config.ServerMode},
		{[]string{"json"}, "JSON", &config.JSONOutput},
		{[]string{"v"}, "VERBOSE", &config.Verbose},
		{[]string{"d", "details"}, "DETAILS", &config.Details},
		{[]string{"quiet", "q"}, "QUIET", &config.Quiet},
		{[]string{"interactive"}, "INTERACTIVE", &config.Interactive},
		{[]string{"no-color"}, "NO_COLOR", &config.NoColor},
	}
	for _, b := range bools {
		if !isFlagSet(fs, b.flags...) {
			*b.dst = getEnvBool(b.key, *b.dst)
		}
	}

	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "max-digits") {
		config.MaxDigits = getEnvInt("MAX_DIGITS", config.MaxDigits)
	}
}
