package bigint

import (
	"errors"
	"math/big"
	"testing"
)

// FuzzParseFormat checks that Parse either rejects its input with
// ErrInvalidNumberFormat or yields a value that formats canonically and
// agrees with math/big.
func FuzzParseFormat(f *testing.F) {
	for _, seed := range []string{"0", "-0", "007", "-123", "", "-", "+1", "1e9", "99999999999999999999"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		x, err := Parse(s)
		if err != nil {
			if !errors.Is(err, ErrInvalidNumberFormat) {
				t.Fatalf("Parse(%q) returned unexpected error kind: %v", s, err)
			}
			return
		}
		want, ok := new(big.Int).SetString(s, 10)
		if !ok {
			t.Fatalf("Parse accepted %q but math/big rejects it", s)
		}
		if x.String() != want.String() {
			t.Fatalf("Parse(%q) = %s, want %s", s, x, want)
		}
		y, err := Parse(x.String())
		if err != nil || !y.Equal(x) {
			t.Fatalf("round trip of %s failed: %v, %v", x, y, err)
		}
	})
}

// FuzzDivideAndRemainder checks the truncating division contract on
// arbitrary int64 operands.
func FuzzDivideAndRemainder(f *testing.F) {
	f.Add(int64(-7), int64(2))
	f.Add(int64(0), int64(1))
	f.Add(int64(1000000), int64(7))
	f.Add(int64(-9223372036854775808), int64(-1))
	f.Add(int64(5), int64(0))

	f.Fuzz(func(t *testing.T, a, b int64) {
		x, y := NewInt(a), NewInt(b)
		q, r, err := x.DivideAndRemainder(y)
		if b == 0 {
			if !errors.Is(err, ErrDivisionByZero) {
				t.Fatalf("%d / 0 error = %v", a, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("%d / %d unexpected error: %v", a, b, err)
		}
		wq, wr := new(big.Int).QuoRem(big.NewInt(a), big.NewInt(b), new(big.Int))
		if q.String() != wq.String() || r.String() != wr.String() {
			t.Fatalf("%d / %d = (%s, %s), want (%s, %s)", a, b, q, r, wq, wr)
		}
	})
}
