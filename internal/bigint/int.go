// Package bigint implements arbitrary-precision signed integers stored as
// decimal digit sequences.
//
// An Int is a value: every operation returns a fresh result and never
// touches the digit storage of its operands, so Ints can be shared freely
// between goroutines. The zero value of Int is 0.
//
// The arithmetic is deliberately the pencil-and-paper kind: carry and borrow
// propagation for addition and subtraction, schoolbook multiplication,
// restoring long division, and square-and-multiply exponentiation.
package bigint

import "fmt"

// Int is an arbitrary-precision signed integer.
type Int struct {
	// digits holds the magnitude, least-significant digit first. It is
	// either nil (the zero value) or canonical: non-empty, every element in
	// [0, 9], and no zero most-significant digit unless the value is 0.
	digits []uint8
	neg    bool
}

// zeroMag is the magnitude returned for the zero value. It is never written.
var zeroMag = []uint8{0}

// Zero returns canonical 0.
func Zero() Int { return Int{digits: []uint8{0}} }

// One returns 1.
func One() Int { return Int{digits: []uint8{1}} }

// NewInt returns the Int holding v.
func NewInt(v int64) Int {
	u := uint64(v)
	if v < 0 {
		u = uint64(-(v + 1)) + 1
	}
	digits := make([]uint8, 0, 20)
	for {
		digits = append(digits, uint8(u%10))
		u /= 10
		if u == 0 {
			break
		}
	}
	return newInt(digits, v < 0)
}

// Parse converts decimal text into an Int. The accepted syntax is an
// optional leading '-' followed by one or more ASCII digits; leading zeros
// are allowed and "-0" yields canonical 0. Any other input fails with an
// error wrapping ErrInvalidNumberFormat.
func Parse(text string) (Int, error) {
	s := text
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return Int{}, syntaxError("Parse", text)
	}
	digits := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return Int{}, syntaxError("Parse", text)
		}
		digits[len(s)-1-i] = c - '0'
	}
	return newInt(digits, neg), nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// constants in tests and initialisers.
func MustParse(text string) Int {
	x, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return x
}

// FromDigits builds an Int from a least-significant-first digit sequence.
// The slice is copied. Most-significant zeros are dropped and a zero
// magnitude is never negative. An empty slice is 0.
func FromDigits(digits []uint8, negative bool) (Int, error) {
	own := make([]uint8, len(digits))
	for i, d := range digits {
		if d > 9 {
			return Int{}, &NumError{Func: "FromDigits", Input: fmt.Sprint(digits), Err: ErrInvalidDigit}
		}
		own[i] = d
	}
	return newInt(own, negative), nil
}

// newInt takes ownership of digits, trims it and fixes the sign of zero.
func newInt(digits []uint8, neg bool) Int {
	digits = trim(digits)
	if len(digits) == 1 && digits[0] == 0 {
		neg = false
	}
	return Int{digits: digits, neg: neg}
}

// trim drops most-significant zeros, keeping at least one digit.
func trim(digits []uint8) []uint8 {
	n := len(digits)
	for n > 1 && digits[n-1] == 0 {
		n--
	}
	if n == 0 {
		return []uint8{0}
	}
	return digits[:n]
}

// mag returns the magnitude digits. The result must not be modified.
func (x Int) mag() []uint8 {
	if len(x.digits) == 0 {
		return zeroMag
	}
	return x.digits
}

// Format returns the canonical decimal representation of x.
func Format(x Int) string { return x.String() }

// String returns x in decimal, most-significant digit first, with a leading
// '-' for negative values. It only reads the digit storage.
func (x Int) String() string {
	d := x.mag()
	b := make([]byte, 0, len(d)+1)
	if x.neg {
		b = append(b, '-')
	}
	for i := len(d) - 1; i >= 0; i-- {
		b = append(b, '0'+d[i])
	}
	return string(b)
}

// Digits returns a copy of the magnitude, least-significant digit first.
// It always has at least one element.
func (x Int) Digits() []uint8 {
	d := x.mag()
	out := make([]uint8, len(d))
	copy(out, d)
	return out
}

// Len returns the number of significant decimal digits of |x|; 0 has one.
func (x Int) Len() int { return len(x.mag()) }

// IsZero reports whether x == 0.
func (x Int) IsZero() bool {
	d := x.mag()
	return len(d) == 1 && d[0] == 0
}

// IsNegative reports whether x < 0.
func (x Int) IsNegative() bool { return x.neg }

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x Int) Sign() int {
	switch {
	case x.neg:
		return -1
	case x.IsZero():
		return 0
	}
	return 1
}

// Neg returns -x backed by a new digit sequence.
func (x Int) Neg() Int {
	return newInt(x.Digits(), !x.neg)
}

// Abs returns |x| backed by a new digit sequence.
func (x Int) Abs() Int {
	return Int{digits: x.Digits()}
}

// CompareAbsolute compares |a| and |b| and returns -1, 0 or +1.
func CompareAbsolute(a, b Int) int {
	return cmpMag(a.mag(), b.mag())
}

// cmpMag compares two canonical magnitudes: the shorter one is smaller, and
// equal lengths are decided by the first differing digit from the top.
func cmpMag(x, y []uint8) int {
	if len(x) != len(y) {
		if len(x) < len(y) {
			return -1
		}
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Cmp compares x and y as signed values and returns -1, 0 or +1.
func (x Int) Cmp(y Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	}
	c := cmpMag(x.mag(), y.mag())
	if x.neg {
		return -c
	}
	return c
}

// Equal reports whether x and y hold the same value.
func (x Int) Equal(y Int) bool { return x.Cmp(y) == 0 }
