package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOp is returned when an operator or operation name is not
// recognised.
var ErrUnknownOp = errors.New("unknown operation")

// Op identifies an arithmetic operation.
type Op string

// Supported operations.
const (
	OpAdd       Op = "add"
	OpSubtract  Op = "sub"
	OpMultiply  Op = "mul"
	OpDivide    Op = "div"
	OpRemainder Op = "mod"
	OpPower     Op = "pow"
	OpFactorial Op = "fact"
)

var opSymbols = map[Op]string{
	OpAdd:       "+",
	OpSubtract:  "-",
	OpMultiply:  "*",
	OpDivide:    "/",
	OpRemainder: "%",
	OpPower:     "^",
	OpFactorial: "!",
}

// Ops lists every operation in display order.
func Ops() []Op {
	return []Op{OpAdd, OpSubtract, OpMultiply, OpDivide, OpRemainder, OpPower, OpFactorial}
}

// ParseOp accepts either an operator symbol (+ - * / % ^ !) or an operation
// name (add, sub, mul, div, mod, pow, fact), case-insensitively.
func ParseOp(s string) (Op, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for op, sym := range opSymbols {
		if s == sym || s == string(op) {
			return op, nil
		}
	}
	switch s {
	case "subtract", "minus":
		return OpSubtract, nil
	case "multiply", "times":
		return OpMultiply, nil
	case "divide", "quo":
		return OpDivide, nil
	case "rem", "remainder":
		return OpRemainder, nil
	case "power", "exp":
		return OpPower, nil
	case "factorial":
		return OpFactorial, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOp, s)
}

// Symbol returns the infix (or postfix, for factorial) operator.
func (o Op) Symbol() string { return opSymbols[o] }

// Unary reports whether the operation takes a single operand.
func (o Op) Unary() bool { return o == OpFactorial }

// Valid reports whether o is one of the supported operations.
func (o Op) Valid() bool {
	_, ok := opSymbols[o]
	return ok
}
