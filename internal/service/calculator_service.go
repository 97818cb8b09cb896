// Package service provides the validated entry point used by the HTTP API to
// evaluate one operation on a named engine.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/engine"
)

var (
	// ErrMaxDigitsExceeded is returned when an operand is longer than the
	// configured limit.
	ErrMaxDigitsExceeded = errors.New("maximum operand length exceeded")
	// ErrWorkLimitExceeded is returned when a factorial or power would
	// produce a result too large to compute within the configured limits.
	ErrWorkLimitExceeded = errors.New("operation exceeds the work limit")
)

// Limits bounds the work a single request may cause. A zero field disables
// the matching check.
type Limits struct {
	// MaxDigits caps the length of each operand and the estimated length of
	// a power result.
	MaxDigits int
	// MaxFactorial is the largest n accepted for n!.
	MaxFactorial int
}

// Service evaluates arithmetic requests.
type Service interface {
	// Compute evaluates req on the named engine.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - engineName: The registry name of the engine to use.
	//   - req: The operation and its operands.
	//
	// Returns:
	//   - bigint.Int: The result.
	//   - error: An error if validation or the operation fails.
	Compute(ctx context.Context, engineName string, req engine.Request) (bigint.Int, error)
}

// CalculatorService checks operand lengths and work limits, resolves the
// engine and runs the operation.
type CalculatorService struct {
	factory engine.Factory
	limits  Limits
}

var _ Service = (*CalculatorService)(nil)

// NewCalculatorService creates a service over factory bounded by limits.
func NewCalculatorService(factory engine.Factory, limits Limits) *CalculatorService {
	return &CalculatorService{factory: factory, limits: limits}
}

// Compute implements Service.
func (s *CalculatorService) Compute(ctx context.Context, engineName string, req engine.Request) (bigint.Int, error) {
	if err := s.checkLimits(req); err != nil {
		return bigint.Int{}, err
	}

	e, err := s.factory.Get(engineName)
	if err != nil {
		return bigint.Int{}, err
	}
	return e.Compute(ctx, req)
}

// checkLimits rejects requests whose operands or estimated work exceed the
// limits. Requests that fail a precondition (negative factorial or
// exponent) are left for the engine to report.
func (s *CalculatorService) checkLimits(req engine.Request) error {
	if limit := s.limits.MaxDigits; limit > 0 {
		if req.A.Len() > limit || (!req.Op.Unary() && req.B.Len() > limit) {
			return fmt.Errorf("%w: limit is %d digits", ErrMaxDigitsExceeded, limit)
		}
	}

	switch req.Op {
	case engine.OpFactorial:
		limit := s.limits.MaxFactorial
		if limit > 0 && req.A.Cmp(bigint.NewInt(int64(limit))) > 0 {
			return fmt.Errorf("%w: factorial is limited to %d!", ErrWorkLimitExceeded, limit)
		}
	case engine.OpPower:
		limit := s.limits.MaxDigits
		if limit <= 0 || req.B.Sign() <= 0 || bigint.CompareAbsolute(req.A, bigint.One()) <= 0 {
			return nil
		}
		// |a|^b has at most len(a)*b digits.
		maxExp := int64(limit / req.A.Len())
		if req.B.Cmp(bigint.NewInt(maxExp)) > 0 {
			return fmt.Errorf("%w: the result would exceed %d digits", ErrWorkLimitExceeded, limit)
		}
	}
	return nil
}
