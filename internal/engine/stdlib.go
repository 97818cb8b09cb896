package engine

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/agbru/bigcalc/internal/bigint"
)

// ErrOperandTooLarge is returned by reference engines whose factorial needs
// the operand to fit in an int64.
var ErrOperandTooLarge = errors.New("operand too large")

// StdlibEngine evaluates requests with math/big. It reports the same
// precondition errors as the digit engine so the two can be compared.
type StdlibEngine struct{}

// Name returns the name of the algorithm.
func (StdlibEngine) Name() string {
	return "math/big"
}

// factorialChunk is the number of factors multiplied between two context
// checks.
const factorialChunk = 1024

// ComputeCore evaluates the request with math/big. Factorial checks ctx
// between chunks of factors; the other operations run to completion.
func (StdlibEngine) ComputeCore(ctx context.Context, req Request) (bigint.Int, error) {
	a, b := req.A.BigInt(), req.B.BigInt()
	z := new(big.Int)
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
		q, r := new(big.Int).QuoRem(a, b, new(big.Int))
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
		if !a.IsInt64() {
			return bigint.Int{}, fmt.Errorf("%w: %s! exceeds int64", ErrOperandTooLarge, a)
		}
		f, err := factorial(ctx, a.Int64())
		if err != nil {
			return bigint.Int{}, err
		}
		z = f
	default:
		return bigint.Int{}, fmt.Errorf("%w: %q", ErrUnknownOp, req.Op)
	}
	return bigint.FromBig(z), nil
}

// factorial computes n! with big.Int.MulRange over chunks of factors.
func factorial(ctx context.Context, n int64) (*big.Int, error) {
	z := big.NewInt(1)
	chunk := new(big.Int)
	for lo := int64(1); lo <= n; lo += factorialChunk {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hi := min(lo+factorialChunk-1, n)
		z.Mul(z, chunk.MulRange(lo, hi))
	}
	return z, nil
}
