// Package uint128 is the primitive codec for 128-bit unsigned values that
// travel as an ordered pair of 64-bit words.
//
// The two-word form is the value type used throughout the entities. Arbitrary
// precision (math/big, shopspring/decimal) appears only at the conversion
// boundary of this package.
package uint128

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"

	"marketmodel/xerr"
)

// UInt128 represents High*2^64 + Low.
type UInt128 struct {
	Low  uint64
	High uint64
}

var (
	Zero = UInt128{}
	Max  = UInt128{Low: ^uint64(0), High: ^uint64(0)}

	two64 = new(big.Int).Lsh(big.NewInt(1), 64)
)

// FromWords decodes the wire pair. Every (low, high) pair is valid.
func FromWords(low, high uint64) UInt128 {
	return UInt128{Low: low, High: high}
}

// FromUint64 widens a 64-bit value.
func FromUint64(v uint64) UInt128 {
	return UInt128{Low: v}
}

// Words encodes the value as its (low, high) wire pair.
func (u UInt128) Words() (low, high uint64) {
	return u.Low, u.High
}

func (u UInt128) IsZero() bool {
	return u.Low == 0 && u.High == 0
}

// Uint64 narrows to 64 bits; ok is false when the high word is set.
func (u UInt128) Uint64() (v uint64, ok bool) {
	return u.Low, u.High == 0
}

func (u UInt128) Cmp(o UInt128) int {
	switch {
	case u.High < o.High:
		return -1
	case u.High > o.High:
		return 1
	case u.Low < o.Low:
		return -1
	case u.Low > o.Low:
		return 1
	}
	return 0
}

// Big returns the exact value as a big.Int.
func (u UInt128) Big() *big.Int {
	hi := new(big.Int).SetUint64(u.High)
	hi.Lsh(hi, 64)
	return hi.Or(hi, new(big.Int).SetUint64(u.Low))
}

// FromBig splits v into words. Negative values and values of 2^128 or more
// fail with RangeExceeded.
func FromBig(v *big.Int) (UInt128, error) {
	if v == nil {
		return Zero, nil
	}
	if v.Sign() < 0 {
		return Zero, xerr.New(xerr.RangeExceeded, "uint128: negative value %s", v)
	}
	if v.BitLen() > 128 {
		return Zero, xerr.New(xerr.RangeExceeded, "uint128: %s needs %d bits", v, v.BitLen())
	}
	q, r := new(big.Int).QuoRem(v, two64, new(big.Int))
	return UInt128{Low: r.Uint64(), High: q.Uint64()}, nil
}

// String renders base 10.
func (u UInt128) String() string {
	if u.High == 0 {
		return fmt.Sprintf("%d", u.Low)
	}
	return u.Big().String()
}

// Parse reads a base 10 value. Hex with a 0x prefix is accepted because
// on-chain sources report felts that way.
func Parse(s string) (UInt128, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok {
		return Zero, xerr.New(xerr.MalformedPayload, "uint128: cannot parse %q", s)
	}
	return FromBig(v)
}

// AddUint64 is used by callers that accumulate volumes; it reports overflow
// instead of wrapping.
func (u UInt128) AddUint64(v uint64) (UInt128, error) {
	lo, carry := bits.Add64(u.Low, v, 0)
	hi, overflow := bits.Add64(u.High, 0, carry)
	if overflow != 0 {
		return Zero, xerr.New(xerr.RangeExceeded, "uint128: %s + %d overflows", u, v)
	}
	return UInt128{Low: lo, High: hi}, nil
}

func (u UInt128) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *UInt128) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalJSON emits a decimal string; JSON numbers cannot carry 128 bits.
func (u UInt128) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// UnmarshalJSON accepts a decimal string or a bare integer literal.
func (u *UInt128) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	return u.UnmarshalText([]byte(s))
}
