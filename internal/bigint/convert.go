package bigint

import "math/big"

// BigInt returns x as a newly allocated *big.Int.
func (x Int) BigInt() *big.Int {
	b, _ := new(big.Int).SetString(x.String(), 10)
	return b
}

// FromBig converts a *big.Int. A nil pointer is 0.
func FromBig(b *big.Int) Int {
	if b == nil {
		return Zero()
	}
	// Text(10) always matches the Parse syntax.
	return MustParse(b.Text(10))
}

// MarshalText implements encoding.TextMarshaler, so an Int is encoded as a
// decimal JSON string rather than a number that could lose precision.
func (x Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		if ne, ok := err.(*NumError); ok {
			ne.Func = "UnmarshalText"
		}
		return err
	}
	*x = v
	return nil
}
