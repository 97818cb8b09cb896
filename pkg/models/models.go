/*
Package models defines the JSON records shared by the command-line JSON
output and the HTTP API.

A Result carries the value as a decimal string so that clients in any
language can read numbers of arbitrary length without loss.
*/
package models

import "time"

// Result is the record of one operation evaluated by one engine.
type Result struct {
	Operation  string  `json:"operation"`        // Operation name (add, sub, mul, div, mod, pow, fact).
	Expression string  `json:"expression"`       // Operation as typed, e.g. "2 ^ 64".
	Engine     string  `json:"engine"`           // Display name of the engine.
	Result     string  `json:"result,omitempty"` // Decimal value, omitted on error.
	Digits     int     `json:"digits,omitempty"` // Number of decimal digits of Result.
	Duration   string  `json:"duration"`         // Formatted execution time.
	DurationMs float64 `json:"duration_ms"`      // Execution time in milliseconds.
	Error      string  `json:"error,omitempty"`  // Error message, if the operation failed.
}

// SetDuration fills both duration fields from d.
func (r *Result) SetDuration(d time.Duration) {
	r.Duration = d.String()
	r.DurationMs = float64(d.Microseconds()) / 1000
}

// Report groups the results of several engines on the same expression.
type Report struct {
	Expression string   `json:"expression"`
	Consistent bool     `json:"consistent"`
	Results    []Result `json:"results"`
}

// EnginesResponse lists the engines a server can evaluate with.
type EnginesResponse struct {
	Engines []string `json:"engines"`
	Default string   `json:"default"`
}
