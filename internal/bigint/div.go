package bigint

// DivideAndRemainder returns the truncated quotient and the remainder of
// x / y, such that q*y + r == x and |r| < |y|. The quotient is rounded
// toward zero and a non-zero remainder carries the sign of x.
//
// It fails with ErrDivisionByZero when y is 0, whatever x is.
func (x Int) DivideAndRemainder(y Int) (q, r Int, err error) {
	if y.IsZero() {
		return Int{}, Int{}, ErrDivisionByZero
	}
	// Guard before the main loop: it keeps shift non-negative.
	if CompareAbsolute(x, y) < 0 {
		return Zero(), newInt(x.Digits(), x.neg), nil
	}

	divisor := y.mag()
	rem := x.Digits()
	shift := len(rem) - len(divisor)

	// Every quotient position gets a digit, including the ones that
	// receive no subtraction.
	quot := make([]uint8, shift+1)

	// shifted is divisor * 10^shift. Dropping its lowest digit divides it
	// by ten for the next position.
	shifted := make([]uint8, shift+len(divisor))
	copy(shifted[shift:], divisor)

	for ; shift >= 0; shift-- {
		for cmpMag(rem, shifted) >= 0 {
			rem = subMag(rem, shifted)
			quot[shift]++
		}
		shifted = shifted[1:]
	}

	return newInt(quot, x.neg != y.neg), newInt(rem, x.neg), nil
}

// Quotient returns x / y truncated toward zero.
func (x Int) Quotient(y Int) (Int, error) {
	q, _, err := x.DivideAndRemainder(y)
	return q, err
}

// Remainder returns x % y with the sign of x.
func (x Int) Remainder(y Int) (Int, error) {
	_, r, err := x.DivideAndRemainder(y)
	return r, err
}
