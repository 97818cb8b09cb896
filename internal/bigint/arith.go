package bigint

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if x.neg != y.neg {
		// x + y == x - (-y)
		return x.Subtract(y.Neg())
	}
	return newInt(addMag(x.mag(), y.mag()), x.neg)
}

// Subtract returns x - y.
func (x Int) Subtract(y Int) Int {
	if x.neg != y.neg {
		// x - y == x + (-y): the magnitudes add up and keep the sign of x.
		return newInt(addMag(x.mag(), y.mag()), x.neg)
	}
	switch cmpMag(x.mag(), y.mag()) {
	case 0:
		return Zero()
	case 1:
		return newInt(subMag(x.mag(), y.mag()), x.neg)
	default:
		return newInt(subMag(y.mag(), x.mag()), !x.neg)
	}
}

// Multiply returns x * y.
func (x Int) Multiply(y Int) Int {
	if x.IsZero() || y.IsZero() {
		return Zero()
	}
	a, b := x.mag(), y.mag()
	acc := make([]uint8, len(a)+len(b))
	for i, da := range a {
		if da == 0 {
			continue
		}
		// acc digit + 9*9 + carry never exceeds 99.
		var carry uint8
		for j, db := range b {
			p := acc[i+j] + da*db + carry
			acc[i+j] = p % 10
			carry = p / 10
		}
		for k := i + len(b); carry > 0; k++ {
			p := acc[k] + carry
			acc[k] = p % 10
			carry = p / 10
		}
	}
	return newInt(acc, x.neg != y.neg)
}

// addMag returns a new magnitude holding x + y.
func addMag(x, y []uint8) []uint8 {
	if len(x) < len(y) {
		x, y = y, x
	}
	z := make([]uint8, 0, len(x)+1)
	var carry uint8
	for i, dx := range x {
		s := dx + carry
		if i < len(y) {
			s += y[i]
		}
		z = append(z, s%10)
		carry = s / 10
	}
	if carry > 0 {
		z = append(z, carry)
	}
	return z
}

// subMag returns a new trimmed magnitude holding x - y. It requires x >= y.
func subMag(x, y []uint8) []uint8 {
	z := make([]uint8, len(x))
	borrow := 0
	for i, dx := range x {
		d := int(dx) - borrow
		if i < len(y) {
			d -= int(y[i])
		}
		if d < 0 {
			d += 10
			borrow = 1
		} else {
			borrow = 0
		}
		z[i] = uint8(d)
	}
	return trim(z)
}
