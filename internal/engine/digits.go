package engine

import (
	"context"
	"fmt"

	"github.com/agbru/bigcalc/internal/bigint"
)

// DigitEngine evaluates requests with the decimal digit arithmetic of the
// bigint package. It is the default engine.
type DigitEngine struct{}

// Name returns the name of the algorithm.
func (DigitEngine) Name() string {
	return "Decimal Digits"
}

// ComputeCore dispatches the request to the matching bigint operation.
// Factorial and power stop with ctx.Err() once ctx is done.
func (DigitEngine) ComputeCore(ctx context.Context, req Request) (bigint.Int, error) {
	a, b := req.A, req.B
	switch req.Op {
	case OpAdd:
		return a.Add(b), nil
	case OpSubtract:
		return a.Subtract(b), nil
	case OpMultiply:
		return a.Multiply(b), nil
	case OpDivide:
		return a.Quotient(b)
	case OpRemainder:
		return a.Remainder(b)
	case OpPower:
		return a.PowerContext(ctx, b)
	case OpFactorial:
		return a.FactorialContext(ctx)
	}
	return bigint.Int{}, fmt.Errorf("%w: %q", ErrUnknownOp, req.Op)
}
