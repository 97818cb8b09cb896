package logging

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Levels lists the accepted -log-level values, most verbose first.
var Levels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// ParseLevel maps a -log-level value to a zerolog level. The empty string
// selects info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	for _, name := range Levels {
		if s == name {
			return zerolog.ParseLevel(s)
		}
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q (want one of %s)", s, strings.Join(Levels, ", "))
}

// SetGlobalLevel parses s and applies it process-wide.
func SetGlobalLevel(s string) error {
	lvl, err := ParseLevel(s)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
