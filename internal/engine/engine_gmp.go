//go:build gmp

// The GMP engine is compiled only with the "gmp" build tag:
//   - the default build needs no C toolchain and uses math/big as reference
//   - GMP support is opt-in: go build -tags=gmp
//
// System requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp

package engine

import (
	"context"
	"fmt"

	"github.com/ncw/gmp"

	"github.com/agbru/bigcalc/internal/bigint"
)

func init() {
	_ = RegisterEngine("gmp", func() coreEngine { return &GMPEngine{} })
}

// GMPEngine evaluates requests with libgmp through cgo.
type GMPEngine struct{}

// Name returns the name of the algorithm.
func (e *GMPEngine) Name() string {
	return "GMP"
}

func toGMP(x bigint.Int) *gmp.Int {
	z, _ := new(gmp.Int).SetString(x.String(), 10)
	return z
}

// ComputeCore evaluates the request with GMP.
func (e *GMPEngine) ComputeCore(_ context.Context, req Request) (bigint.Int, error) {
	a, b := toGMP(req.A), toGMP(req.B)
	z := gmp.NewInt(0)
	switch req.Op {
	case OpAdd:
		z.Add(a, b)
	case OpSubtract:
		z.Sub(a, b)
	case OpMultiply:
		z.Mul(a, b)
	case OpDivide, OpRemainder:
		if b.Sign() == 0 {
			return bigint.Int{}, bigint.ErrDivisionByZero
		}
		q, r := new(gmp.Int).QuoRem(a, b, new(gmp.Int))
		if req.Op == OpDivide {
			z = q
		} else {
			z = r
		}
	case OpPower:
		if b.Sign() < 0 {
			return bigint.Int{}, bigint.ErrNegativeExponent
		}
		z.Exp(a, b, nil)
	case OpFactorial:
		if a.Sign() < 0 {
			return bigint.Int{}, bigint.ErrNegativeFactorial
		}
		if req.A.Len() > 18 {
			return bigint.Int{}, fmt.Errorf("%w: %s! exceeds int64", ErrOperandTooLarge, req.A)
		}
		z.MulRange(1, a.Int64())
	default:
		return bigint.Int{}, fmt.Errorf("%w: %q", ErrUnknownOp, req.Op)
	}
	return bigint.Parse(z.String())
}
