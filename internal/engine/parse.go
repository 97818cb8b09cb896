package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agbru/bigcalc/internal/bigint"
)

// ErrInvalidExpression is returned when text is not one of the accepted
// expression forms.
var ErrInvalidExpression = errors.New("invalid expression")

// ParseRequest reads a single operation in one of three forms:
//
//	<a> <op> <b>    infix, op one of + - * / % ^ (spaces optional)
//	<n>!            factorial
//	<name> <a> [b]  command form, name as accepted by ParseOp
//
// Only one operator is allowed. Operands use bigint.Parse syntax, so a
// leading '-' is part of the number: "5--3" is 5 minus -3.
func ParseRequest(text string) (Request, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Request{}, fmt.Errorf("%w: empty input", ErrInvalidExpression)
	}

	if isLetter(fields[0][0]) {
		op, err := ParseOp(fields[0])
		if err != nil {
			return Request{}, err
		}
		want := 2
		if op.Unary() {
			want = 1
		}
		if len(fields)-1 != want {
			return Request{}, fmt.Errorf("%w: %s takes %d operand(s), got %d",
				ErrInvalidExpression, op, want, len(fields)-1)
		}
		return newRequest(op, fields[1:]...)
	}

	s := strings.Join(fields, "")
	if strings.HasSuffix(s, "!") {
		return newRequest(OpFactorial, s[:len(s)-1])
	}

	i := operandEnd(s)
	if i == len(s) {
		return Request{}, fmt.Errorf("%w: missing operator in %q", ErrInvalidExpression, text)
	}
	op, err := ParseOp(s[i : i+1])
	if err != nil {
		return Request{}, err
	}
	if op.Unary() {
		return Request{}, fmt.Errorf("%w: '!' must end the expression", ErrInvalidExpression)
	}
	return newRequest(op, s[:i], s[i+1:])
}

// ParseRequestArgs parses command-line arguments as one expression.
func ParseRequestArgs(args []string) (Request, error) {
	return ParseRequest(strings.Join(args, " "))
}

func newRequest(op Op, operands ...string) (Request, error) {
	req := Request{Op: op}
	dst := []*bigint.Int{&req.A, &req.B}
	for i, s := range operands {
		if s == "" {
			return Request{}, fmt.Errorf("%w: missing operand for %s", ErrInvalidExpression, op.Symbol())
		}
		x, err := bigint.Parse(s)
		if err != nil {
			return Request{}, err
		}
		*dst[i] = x
	}
	return req, nil
}

// operandEnd returns the length of the leading "-?[0-9]*" run of s.
func operandEnd(s string) int {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
