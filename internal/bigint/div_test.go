package bigint

import (
	"errors"
	"testing"
)

func TestDivideAndRemainder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		a, b      string
		wantQ     string
		wantR     string
		wantError error
	}{
		{name: "negative dividend truncates", a: "-7", b: "2", wantQ: "-3", wantR: "-1"},
		{name: "positive", a: "7", b: "2", wantQ: "3", wantR: "1"},
		{name: "negative divisor", a: "7", b: "-2", wantQ: "-3", wantR: "1"},
		{name: "both negative", a: "-7", b: "-2", wantQ: "3", wantR: "-1"},
		{name: "exact", a: "121932631112635269", b: "987654321", wantQ: "123456789", wantR: "0"},
		{name: "exact negative", a: "-100", b: "10", wantQ: "-10", wantR: "0"},
		{name: "dividend smaller", a: "3", b: "10", wantQ: "0", wantR: "3"},
		{name: "negative dividend smaller", a: "-3", b: "10", wantQ: "0", wantR: "-3"},
		{name: "zero dividend", a: "0", b: "-9", wantQ: "0", wantR: "0"},
		{name: "sparse quotient digits", a: "1000001", b: "1", wantQ: "1000001", wantR: "0"},
		{name: "interior zero digits", a: "10000000", b: "99", wantQ: "101010", wantR: "10"},
		{name: "quotient top digit zero", a: "10", b: "9", wantQ: "1", wantR: "1"},
		{name: "equal magnitudes", a: "-123", b: "123", wantQ: "-1", wantR: "0"},
		{name: "long", a: "99999999999999999999999999", b: "12345678901", wantQ: "8100000073053900", wantR: "8134236099"},
		{name: "by zero", a: "5", b: "0", wantError: ErrDivisionByZero},
		{name: "zero by zero", a: "0", b: "-0", wantError: ErrDivisionByZero},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, b := MustParse(tt.a), MustParse(tt.b)
			q, r, err := a.DivideAndRemainder(b)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Fatalf("error = %v, want %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.String() != tt.wantQ || r.String() != tt.wantR {
				t.Errorf("%s / %s = (%s, %s), want (%s, %s)", tt.a, tt.b, q, r, tt.wantQ, tt.wantR)
			}
			if back := q.Multiply(b).Add(r); !back.Equal(a) {
				t.Errorf("q*b + r = %s, want %s", back, a)
			}
			if CompareAbsolute(r, b) >= 0 {
				t.Errorf("|r| = %s is not below |b| = %s", r.Abs(), b.Abs())
			}
		})
	}
}

func TestQuotientRemainder(t *testing.T) {
	t.Parallel()
	a, b := MustParse("-17"), MustParse("5")
	q, err := a.Quotient(b)
	if err != nil || q.String() != "-3" {
		t.Errorf("Quotient = %s, %v; want -3", q, err)
	}
	r, err := a.Remainder(b)
	if err != nil || r.String() != "-2" {
		t.Errorf("Remainder = %s, %v; want -2", r, err)
	}
	if _, err := a.Quotient(Zero()); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Quotient by zero error = %v", err)
	}
	if _, err := a.Remainder(Int{}); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Remainder by zero value error = %v", err)
	}
}

func TestDivideRemainderIsIndependentCopy(t *testing.T) {
	t.Parallel()
	a := MustParse("-3")
	_, r, err := a.DivideAndRemainder(NewInt(10))
	if err != nil {
		t.Fatal(err)
	}
	d := r.Digits()
	d[0] = 9
	if a.String() != "-3" || r.String() != "-3" {
		t.Errorf("a=%s r=%s, want both -3", a, r)
	}
}
