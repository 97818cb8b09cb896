// Command generate-golden writes the factorial and power test vectors of
// internal/bigint/testdata/golden.json, computed with math/big.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData represents a single test case in the golden file.
type GoldenData struct {
	Op     string `json:"op"`
	A      string `json:"a"`
	B      string `json:"b,omitempty"`
	Result string `json:"result"`
}

var factorials = []int64{0, 1, 2, 5, 10, 20, 25, 50, 100, 200}

var powers = [][2]int64{
	{2, 0}, {2, 10}, {2, 64}, {2, 100}, {2, 255},
	{3, 100}, {-3, 33}, {10, 50}, {7, 77}, {-12, 12},
	{123456789, 5}, {0, 9},
}

func main() {
	outputDir := flag.String("out", "internal/bigint/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	data := make([]GoldenData, 0, len(factorials)+len(powers))
	for _, n := range factorials {
		data = append(data, GoldenData{Op: "factorial", A: fmt.Sprint(n), Result: factorialBig(n).String()})
	}
	for _, p := range powers {
		base, exp := big.NewInt(p[0]), big.NewInt(p[1])
		data = append(data, GoldenData{
			Op:     "power",
			A:      base.String(),
			B:      exp.String(),
			Result: new(big.Int).Exp(base, exp, nil).String(),
		})
	}

	filename := filepath.Join(*outputDir, "golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated %d cases in %s\n", len(data), filename)
}

// factorialBig is the math/big oracle for n!.
func factorialBig(n int64) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, n)
}
