package bigint

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFactorial(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n, want string
	}{
		{"0", "1"},
		{"1", "1"},
		{"5", "120"},
		{"10", "3628800"},
		{"20", "2432902008176640000"},
		{"30", "265252859812191058636308480000000"},
	}
	for _, tt := range tests {
		got, err := MustParse(tt.n).Factorial()
		if err != nil {
			t.Fatalf("%s! unexpected error: %v", tt.n, err)
		}
		if got.String() != tt.want {
			t.Errorf("%s! = %s, want %s", tt.n, got, tt.want)
		}
	}

	if _, err := NewInt(-1).Factorial(); !errors.Is(err, ErrNegativeFactorial) {
		t.Errorf("(-1)! error = %v, want ErrNegativeFactorial", err)
	}
}

func TestPower(t *testing.T) {
	t.Parallel()
	tests := []struct {
		base, exp, want string
	}{
		{"2", "10", "1024"},
		{"0", "0", "1"},
		{"-5", "0", "1"},
		{"0", "5", "0"},
		{"1", "1000", "1"},
		{"-2", "3", "-8"},
		{"-2", "4", "16"},
		{"10", "20", "100000000000000000000"},
		{"3", "40", "12157665459056928801"},
		{"-1", "1001", "-1"},
		{"-1", "1000", "1"},
		{"1", "9" + strings.Repeat("0", 40), "1"},
		{"-1", "9" + strings.Repeat("0", 40) + "7", "-1"},
		{"7", "1", "7"},
	}
	for _, tt := range tests {
		got, err := MustParse(tt.base).Power(MustParse(tt.exp))
		if err != nil {
			t.Fatalf("%s^%s unexpected error: %v", tt.base, tt.exp, err)
		}
		if got.String() != tt.want {
			t.Errorf("%s^%s = %s, want %s", tt.base, tt.exp, got, tt.want)
		}
	}

	for _, base := range []string{"0", "2", "-3"} {
		if _, err := MustParse(base).Power(NewInt(-2)); !errors.Is(err, ErrNegativeExponent) {
			t.Errorf("%s^-2 error = %v, want ErrNegativeExponent", base, err)
		}
	}
}

func TestFactorialPowerContext(t *testing.T) {
	t.Parallel()
	huge := MustParse("99999999999999")

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := huge.FactorialContext(canceled); !errors.Is(err, context.Canceled) {
		t.Errorf("FactorialContext error = %v, want context.Canceled", err)
	}
	if _, err := NewInt(7).PowerContext(canceled, huge); !errors.Is(err, context.Canceled) {
		t.Errorf("PowerContext error = %v, want context.Canceled", err)
	}

	// A running computation stops at the next step once the deadline passes.
	ctx, cancelTimeout := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelTimeout()
	start := time.Now()
	if _, err := huge.FactorialContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("FactorialContext error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("FactorialContext took %v after its deadline", elapsed)
	}

	// Validation still comes first.
	if _, err := NewInt(-1).FactorialContext(canceled); !errors.Is(err, ErrNegativeFactorial) {
		t.Errorf("error = %v, want ErrNegativeFactorial", err)
	}
	if got, err := NewInt(3).PowerContext(context.Background(), NewInt(5)); err != nil || got.String() != "243" {
		t.Errorf("3^5 = %s, %v", got, err)
	}
}
