package engine

import (
	"errors"
	"testing"

	"github.com/agbru/bigcalc/internal/bigint"
)

func TestParseRequest(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string // Request.String() of the parsed request
		wantErr error
	}{
		{in: "123456789 * 987654321", want: "123456789 * 987654321"},
		{in: "2^10", want: "2 ^ 10"},
		{in: "  -7 / 2 ", want: "-7 / 2"},
		{in: "-7 % 2", want: "-7 % 2"},
		{in: "5--3", want: "5 - -3"},
		{in: "-5 - 3", want: "-5 - 3"},
		{in: "100 + -0", want: "100 + 0"},
		{in: "20!", want: "20!"},
		{in: "20 !", want: "20!"},
		{in: "-3!", want: "-3!"},
		{in: "add 1 2", want: "1 + 2"},
		{in: "POW 2 64", want: "2 ^ 64"},
		{in: "fact 5", want: "5!"},
		{in: "mod -7 2", want: "-7 % 2"},
		{in: "", wantErr: ErrInvalidExpression},
		{in: "42", wantErr: ErrInvalidExpression},
		{in: "1 + 2 + 3", wantErr: bigint.ErrInvalidNumberFormat},
		{in: "+5", wantErr: ErrInvalidExpression},
		{in: "5 +", wantErr: ErrInvalidExpression},
		{in: "5!3", wantErr: ErrInvalidExpression},
		{in: "1.5 * 2", wantErr: ErrUnknownOp},
		{in: "12a * 2", wantErr: ErrUnknownOp},
		{in: "x = 5", wantErr: ErrUnknownOp},
		{in: "add 1", wantErr: ErrInvalidExpression},
		{in: "fact 1 2", wantErr: ErrInvalidExpression},
		{in: "sqrt 4", wantErr: ErrUnknownOp},
		{in: "mul 2 1e3", wantErr: bigint.ErrInvalidNumberFormat},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			req, err := ParseRequest(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseRequest(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest(%q) unexpected error: %v", tt.in, err)
			}
			if got := req.String(); got != tt.want {
				t.Errorf("ParseRequest(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRequestArgs(t *testing.T) {
	t.Parallel()
	req, err := ParseRequestArgs([]string{"-12", "^", "3"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Op != OpPower || req.A.String() != "-12" || req.B.String() != "3" {
		t.Errorf("got %s", req)
	}
	if !req.B.Equal(bigint.NewInt(3)) {
		t.Error("B should be 3")
	}
}
