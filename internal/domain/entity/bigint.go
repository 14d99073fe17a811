package entity

import (
	"fmt"
	"math/big"
	"strings"
)

// BigInt wraps big.Int so that every quantity leaving the service layer is
// serialized as a decimal string. JSON numbers cannot carry 256-bit values
// without precision loss.
type BigInt big.Int

// NewBigInt wraps v. A nil input yields a zero value.
func NewBigInt(v *big.Int) *BigInt {
	if v == nil {
		return (*BigInt)(new(big.Int))
	}
	return (*BigInt)(new(big.Int).Set(v))
}

// Int returns the underlying big.Int.
func (b *BigInt) Int() *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return (*big.Int)(b)
}

// String returns the decimal representation.
func (b *BigInt) String() string {
	return b.Int().String()
}

// MarshalJSON encodes the value as a quoted decimal string.
func (b *BigInt) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte(`"0"`), nil
	}
	return []byte(`"` + b.Int().String() + `"`), nil
}

// UnmarshalJSON accepts both a quoted decimal string and a bare JSON number.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("invalid big integer value %q", s)
	}
	*b = BigInt(*v)
	return nil
}
