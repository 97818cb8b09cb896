// Package engine exposes arbitrary-precision arithmetic behind a common
// Engine interface so that several implementations (the decimal digit
// engine, math/big, GMP) can be selected by name and cross-checked.
//
// Every engine is wrapped by MeteredEngine, which adds the cross-cutting
// concerns: context cancellation, Prometheus metrics, OpenTelemetry tracing
// and debug logging.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	"github.com/agbru/bigcalc/internal/bigint"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bigcalc_operations_total",
			Help: "The total number of arithmetic operations processed",
		},
		[]string{"engine", "op", "status"},
	)
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bigcalc_operation_duration_seconds",
			Help: "The duration of arithmetic operations in seconds",
		},
		[]string{"engine", "op"},
	)
)

// Request describes one operation. B is ignored by unary operations.
type Request struct {
	Op Op
	A  bigint.Int
	B  bigint.Int
}

// String renders the request the way a user would type it.
func (r Request) String() string {
	if r.Op.Unary() {
		return r.A.String() + r.Op.Symbol()
	}
	return fmt.Sprintf("%s %s %s", r.A, r.Op.Symbol(), r.B)
}

// Engine is the public interface of an arithmetic engine.
type Engine interface {
	// Compute evaluates the request. It returns ctx.Err() if the context
	// ends before the result is available.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and deadlines.
	//   - req: The operation and its operands.
	//
	// Returns:
	//   - bigint.Int: The result.
	//   - error: A bigint precondition error, ErrUnknownOp, or a context error.
	Compute(ctx context.Context, req Request) (bigint.Int, error)

	// Name returns the display name of the engine.
	Name() string
}

// coreEngine is the internal interface of an arithmetic implementation.
// Implementations may ignore ctx for operations that cannot be interrupted.
type coreEngine interface {
	ComputeCore(ctx context.Context, req Request) (bigint.Int, error)
	Name() string
}

// MeteredEngine decorates a coreEngine with cancellation, metrics, tracing
// and logging.
type MeteredEngine struct {
	core coreEngine
}

// NewEngine wraps core. It panics if core is nil.
func NewEngine(core coreEngine) Engine {
	if core == nil {
		panic("engine: the `coreEngine` implementation cannot be nil")
	}
	return &MeteredEngine{core: core}
}

// Name returns the name of the wrapped engine.
func (e *MeteredEngine) Name() string {
	return e.core.Name()
}

// Compute runs the core computation on its own goroutine so that a
// cancelled or expired context returns promptly. The core receives the same
// context: the digit engine stops at its next step, while a core that cannot
// be interrupted finishes in the background and its result is dropped.
func (e *MeteredEngine) Compute(ctx context.Context, req Request) (result bigint.Int, err error) {
	tracer := otel.Tracer("engine")
	ctx, span := tracer.Start(ctx, "Compute."+string(req.Op))
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
		}
		name := e.core.Name()
		operationsTotal.WithLabelValues(name, string(req.Op), status).Inc()
		operationDuration.WithLabelValues(name, string(req.Op)).Observe(duration)

		log.Debug().
			Str("engine", name).
			Str("op", string(req.Op)).
			Int("a_digits", req.A.Len()).
			Int("b_digits", req.B.Len()).
			Float64("duration", duration).
			Str("status", status).
			Msg("operation completed")
	}()

	if !req.Op.Valid() {
		return bigint.Int{}, fmt.Errorf("%w: %q", ErrUnknownOp, req.Op)
	}
	if err := ctx.Err(); err != nil {
		return bigint.Int{}, err
	}

	type outcome struct {
		value bigint.Int
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := e.core.ComputeCore(ctx, req)
		done <- outcome{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return bigint.Int{}, ctx.Err()
	case o := <-done:
		return o.value, o.err
	}
}
