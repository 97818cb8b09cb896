package server

import (
	"net/http"
	"slices"
	"strings"
)

const (
	// DefaultMaxDigits is the operand length cap of the HTTP API when the
	// configuration does not set one. It also bounds the estimated length
	// of a power result.
	DefaultMaxDigits = 100_000
	// DefaultMaxFactorial is the largest n the HTTP API accepts for n!.
	DefaultMaxFactorial = 5_000
)

// SecurityConfig holds the response headers policy and input limits.
type SecurityConfig struct {
	// EnableCORS enables Cross-Origin Resource Sharing headers.
	EnableCORS bool
	// AllowedOrigins lists allowed CORS origins; "*" allows all.
	AllowedOrigins []string
	// AllowedMethods lists the methods announced to CORS preflights.
	AllowedMethods []string
	// MaxDigits caps the length of each operand and of a power result.
	// 0 disables the cap.
	MaxDigits int
	// MaxFactorial caps n in n!. 0 disables the cap.
	MaxFactorial int
}

// DefaultSecurityConfig returns the default security configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxDigits:      DefaultMaxDigits,
		MaxFactorial:   DefaultMaxFactorial,
	}
}

// SecurityMiddleware sets hardening headers on every response and, when
// enabled, CORS headers. Preflight OPTIONS requests are answered with 204.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			origin := r.Header.Get("Origin")
			allowed := ""
			if slices.Contains(config.AllowedOrigins, "*") {
				allowed = "*"
			} else if origin != "" && slices.Contains(config.AllowedOrigins, origin) {
				allowed = origin
			}
			if allowed != "" {
				h.Set("Access-Control-Allow-Origin", allowed)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
				h.Set("Access-Control-Max-Age", "86400")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next(w, r)
	}
}
