package timelock

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"strings"
)

// ScalarSize is the fixed-width encoding size of a scalar in bytes.
const ScalarSize = 32

// fieldOrder is the prime order of the BLS12-381 scalar field. Every
// Scalar is kept reduced modulo this value.
var fieldOrder, _ = new(big.Int).SetString(
	"73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 16)

// FieldOrder returns a copy of the scalar field order.
func FieldOrder() *big.Int {
	return new(big.Int).Set(fieldOrder)
}

// Scalar is an integer in [0, P) where P is the scalar field order.
type Scalar struct {
	v *big.Int
}

// NewScalar creates a scalar from a small integer, reduced into the field.
func NewScalar(v int64) *Scalar {
	return newScalarReduced(big.NewInt(v))
}

func newScalarReduced(v *big.Int) *Scalar {
	r := new(big.Int).Mod(v, fieldOrder)
	if r.Sign() < 0 {
		r.Add(r, fieldOrder)
	}
	return &Scalar{v: r}
}

// ScalarFromBytes decodes a 32-byte big-endian scalar. Values at or above
// the field order are rejected rather than silently reduced.
func ScalarFromBytes(data []byte) (*Scalar, error) {
	if len(data) != ScalarSize {
		return nil, ErrInvalidScalarLength.WithContext("length", len(data))
	}
	v := new(big.Int).SetBytes(data)
	if v.Cmp(fieldOrder) >= 0 {
		return nil, ErrInvalidScalarLength.WithDetails("value exceeds the field order")
	}
	return &Scalar{v: v}, nil
}

// scalarFromBytesReduced decodes big-endian bytes of any length up to 32,
// reducing modulo the field order. Used where the input is an XOR of
// encodings and may exceed the field order.
func scalarFromBytesReduced(data []byte) *Scalar {
	return newScalarReduced(new(big.Int).SetBytes(data))
}

// ScalarFromHex decodes a hex string, optionally 0x-prefixed and without
// leading-zero padding, into a scalar. The decoded value must fit the
// fixed 32-byte width and, like ScalarFromBytes, lie below the field
// order; values at or above it are rejected rather than silently reduced.
func ScalarFromHex(s string) (*Scalar, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidHex.WithCause(err)
	}
	if len(data) > ScalarSize {
		return nil, ErrInvalidScalarLength.WithContext("length", len(data))
	}
	v := new(big.Int).SetBytes(data)
	if v.Cmp(fieldOrder) >= 0 {
		return nil, ErrInvalidScalarLength.WithDetails("value exceeds the field order")
	}
	return &Scalar{v: v}, nil
}

// Bytes returns the 32-byte big-endian zero-padded encoding.
func (s *Scalar) Bytes() []byte {
	out := make([]byte, ScalarSize)
	s.v.FillBytes(out)
	return out
}

// Hex returns the 0x-prefixed hex encoding of the full 32-byte width.
func (s *Scalar) Hex() string {
	return "0x" + hex.EncodeToString(s.Bytes())
}

func (s *Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

// BigInt returns a copy of the scalar value.
func (s *Scalar) BigInt() *big.Int {
	return new(big.Int).Set(s.v)
}

// Add returns s + other mod P
func (s *Scalar) Add(other *Scalar) *Scalar {
	return newScalarReduced(new(big.Int).Add(s.v, other.v))
}

// Sub returns s - other mod P
func (s *Scalar) Sub(other *Scalar) *Scalar {
	return newScalarReduced(new(big.Int).Sub(s.v, other.v))
}

// Mul returns s * other mod P
func (s *Scalar) Mul(other *Scalar) *Scalar {
	return newScalarReduced(new(big.Int).Mul(s.v, other.v))
}

// Negate returns -s mod P
func (s *Scalar) Negate() *Scalar {
	return newScalarReduced(new(big.Int).Neg(s.v))
}

// Invert returns the modular inverse s^(P-2) mod P by Fermat's little
// theorem, which holds because P is prime.
func (s *Scalar) Invert() (*Scalar, error) {
	if s.IsZero() {
		return nil, ErrScalarZero
	}
	exp := new(big.Int).Sub(fieldOrder, big.NewInt(2))
	return &Scalar{v: new(big.Int).Exp(s.v, exp, fieldOrder)}, nil
}

// Equal reports whether two scalars hold the same field element
func (s *Scalar) Equal(other *Scalar) bool {
	return s.v.Cmp(other.v) == 0
}

// IsZero reports whether the scalar is zero
func (s *Scalar) IsZero() bool {
	return s.v.Sign() == 0
}

// Clone returns an independent copy
func (s *Scalar) Clone() *Scalar {
	return &Scalar{v: new(big.Int).Set(s.v)}
}

// Zeroize clears the scalar value. big.Int offers no guaranteed memory
// wipe, so this is best effort only.
func (s *Scalar) Zeroize() {
	s.v.SetInt64(0)
}

// RandomScalar draws a scalar uniformly from [0, P) using a
// cryptographically secure source.
func RandomScalar() (*Scalar, error) {
	v, err := rand.Int(rand.Reader, fieldOrder)
	if err != nil {
		return nil, ErrRandomnessGeneration.WithCause(err)
	}
	return &Scalar{v: v}, nil
}

// randomNonZeroScalar draws uniformly from [1, P-1].
func randomNonZeroScalar() (*Scalar, error) {
	max := new(big.Int).Sub(fieldOrder, big.NewInt(1))
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return nil, ErrRandomnessGeneration.WithCause(err)
	}
	return &Scalar{v: v.Add(v, big.NewInt(1))}, nil
}

// HashToScalar deterministically maps arbitrary byte strings into the
// scalar field. Identical input always yields an identical output.
func HashToScalar(data ...[]byte) *Scalar {
	hasher := sha256.New()
	for _, d := range data {
		hasher.Write(d)
	}
	return scalarFromBytesReduced(hasher.Sum(nil))
}

// xorBytes XORs two equal-length byte strings.
func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
