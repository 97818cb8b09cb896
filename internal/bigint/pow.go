package bigint

import "context"

// Factorial returns x!. It fails with ErrNegativeFactorial when x < 0.
func (x Int) Factorial() (Int, error) {
	return x.FactorialContext(context.Background())
}

// FactorialContext is Factorial, except that it returns ctx.Err() before
// the next multiplication once ctx is done.
func (x Int) FactorialContext(ctx context.Context) (Int, error) {
	if x.neg {
		return Int{}, ErrNegativeFactorial
	}
	one := One()
	result := One()
	for cur := x; !cur.IsZero(); cur = cur.Subtract(one) {
		if err := ctx.Err(); err != nil {
			return Int{}, err
		}
		result = result.Multiply(cur)
	}
	return result, nil
}

// Power returns x raised to exp by binary exponentiation, using
// O(log exp) multiplications. x^0 is 1 for every x, including 0.
// It fails with ErrNegativeExponent when exp < 0.
func (x Int) Power(exp Int) (Int, error) {
	return x.PowerContext(context.Background(), exp)
}

// PowerContext is Power, except that it returns ctx.Err() before the next
// squaring once ctx is done.
func (x Int) PowerContext(ctx context.Context, exp Int) (Int, error) {
	if exp.neg {
		return Int{}, ErrNegativeExponent
	}
	if exp.IsZero() {
		return One(), nil
	}
	if x.IsZero() {
		return Zero(), nil
	}
	// |x| == 1: only the sign depends on exp.
	if m := x.mag(); len(m) == 1 && m[0] == 1 {
		if x.neg && exp.mag()[0]%2 == 1 {
			return NewInt(-1), nil
		}
		return One(), nil
	}

	two := NewInt(2)
	result, base, e := One(), x, exp
	for !e.IsZero() {
		if err := ctx.Err(); err != nil {
			return Int{}, err
		}
		if e.mag()[0]%2 == 1 {
			result = result.Multiply(base)
		}
		var err error
		if e, _, err = e.DivideAndRemainder(two); err != nil {
			return Int{}, err
		}
		if !e.IsZero() {
			base = base.Multiply(base)
		}
	}
	return result, nil
}
