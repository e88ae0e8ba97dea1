package timelock

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/drand/kyber"
	bls "github.com/drand/kyber-bls12381"
)

// The scheme is pinned to BLS12-381: share verification needs a pairing,
// and the scalar field order above is this curve's group order.
var pairingSuite = bls.NewBLS12381Suite()

const (
	// G1PointSize is the compressed encoding size of a G1 point.
	G1PointSize = 48
	// G2PointSize is the compressed encoding size of a G2 point.
	G2PointSize = 96
)

// baseFieldModulus is the prime modulus of the curve's base field,
// needed only for the uncompressed [x, y] boundary encoding of G1.
var baseFieldModulus, _ = new(big.Int).SetString(
	"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f624"+
		"1eabfffeb153ffffb9feffffffffaaab", 16)

// G1Point is a point in the G1 group. Value semantics: operations return
// new points and never mutate the receiver.
type G1Point struct {
	v kyber.Point
}

// G2Point is a point in the G2 group.
type G2Point struct {
	v kyber.Point
}

// G1Generator returns the G1 base point.
func G1Generator() *G1Point {
	return &G1Point{v: pairingSuite.G1().Point().Base()}
}

// G2Generator returns the G2 base point.
func G2Generator() *G2Point {
	return &G2Point{v: pairingSuite.G2().Point().Base()}
}

func kyberScalar(s *Scalar) kyber.Scalar {
	return pairingSuite.G1().Scalar().SetBytes(s.Bytes())
}

// G1FromBytes decodes a compressed G1 point, rejecting anything off the
// curve or outside the prime-order subgroup.
func G1FromBytes(data []byte) (*G1Point, error) {
	if len(data) != G1PointSize {
		return nil, ErrInvalidPointLength.WithContext("length", len(data))
	}
	p := pairingSuite.G1().Point()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, ErrMalformedPoint.WithCause(err)
	}
	return &G1Point{v: p}, nil
}

// G2FromBytes decodes a compressed G2 point.
func G2FromBytes(data []byte) (*G2Point, error) {
	if len(data) != G2PointSize {
		return nil, ErrInvalidPointLength.WithContext("length", len(data))
	}
	p := pairingSuite.G2().Point()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, ErrMalformedPoint.WithCause(err)
	}
	return &G2Point{v: p}, nil
}

// G1FromHex decodes an optionally 0x-prefixed compressed G1 point.
func G1FromHex(s string) (*G1Point, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, ErrInvalidHex.WithCause(err)
	}
	return G1FromBytes(data)
}

// G2FromHex decodes an optionally 0x-prefixed compressed G2 point.
func G2FromHex(s string) (*G2Point, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, ErrInvalidHex.WithCause(err)
	}
	return G2FromBytes(data)
}

// G1FromAffine builds a G1 point from its uncompressed affine
// coordinates, the [x, y] pair used at the API boundary. The pair is
// checked against the curve equation y^2 = x^3 + 4 before the subgroup
// check.
func G1FromAffine(x, y *big.Int) (*G1Point, error) {
	if x == nil || y == nil || x.Sign() < 0 || y.Sign() < 0 ||
		x.Cmp(baseFieldModulus) >= 0 || y.Cmp(baseFieldModulus) >= 0 {
		return nil, ErrMalformedPoint.WithDetails("coordinate out of field range")
	}

	lhs := new(big.Int).Exp(y, big.NewInt(2), baseFieldModulus)
	rhs := new(big.Int).Exp(x, big.NewInt(3), baseFieldModulus)
	rhs.Add(rhs, big.NewInt(4)).Mod(rhs, baseFieldModulus)
	if lhs.Cmp(rhs) != 0 {
		return nil, ErrMalformedPoint.WithDetails("coordinates do not satisfy the curve equation")
	}

	// Re-encode in compressed form: big-endian x with the compression
	// flag in the top bit and the sign of y in bit 5 of the first byte.
	buf := make([]byte, G1PointSize)
	x.FillBytes(buf)
	buf[0] |= 0x80
	if y.Cmp(fieldHalf()) > 0 {
		buf[0] |= 0x20
	}
	return G1FromBytes(buf)
}

// Affine returns the uncompressed affine coordinates of a G1 point.
// The identity element has no affine representation and is rejected.
func (p *G1Point) Affine() (x, y *big.Int, err error) {
	data := p.Bytes()
	if data[0]&0x40 != 0 {
		return nil, nil, ErrMalformedPoint.WithDetails("identity has no affine coordinates")
	}
	sign := data[0]&0x20 != 0

	xb := make([]byte, len(data))
	copy(xb, data)
	xb[0] &= 0x1f
	x = new(big.Int).SetBytes(xb)

	// Recover y from the curve equation and pick the root matching the
	// stored sign bit.
	y2 := new(big.Int).Exp(x, big.NewInt(3), baseFieldModulus)
	y2.Add(y2, big.NewInt(4)).Mod(y2, baseFieldModulus)
	y = new(big.Int).ModSqrt(y2, baseFieldModulus)
	if y == nil {
		return nil, nil, ErrMalformedPoint.WithDetails("x coordinate has no matching y")
	}
	if (y.Cmp(fieldHalf()) > 0) != sign {
		y = new(big.Int).Sub(baseFieldModulus, y)
	}
	return x, y, nil
}

func fieldHalf() *big.Int {
	half := new(big.Int).Sub(baseFieldModulus, big.NewInt(1))
	return half.Rsh(half, 1)
}

// Bytes returns the compressed encoding.
func (p *G1Point) Bytes() []byte {
	data, _ := p.v.MarshalBinary()
	return data
}

// Hex returns the 0x-prefixed compressed encoding.
func (p *G1Point) Hex() string {
	return "0x" + hex.EncodeToString(p.Bytes())
}

func (p *G1Point) String() string {
	return hex.EncodeToString(p.Bytes())
}

// Add returns p + other
func (p *G1Point) Add(other *G1Point) *G1Point {
	r := pairingSuite.G1().Point()
	return &G1Point{v: r.Add(p.v, other.v)}
}

// Mul returns scalar * p
func (p *G1Point) Mul(s *Scalar) *G1Point {
	r := pairingSuite.G1().Point()
	return &G1Point{v: r.Mul(kyberScalar(s), p.v)}
}

// Negate returns -p
func (p *G1Point) Negate() *G1Point {
	r := pairingSuite.G1().Point()
	return &G1Point{v: r.Neg(p.v)}
}

// Equal reports whether two points are the same group element
func (p *G1Point) Equal(other *G1Point) bool {
	return p.v.Equal(other.v)
}

// IsIdentity reports whether p is the group identity
func (p *G1Point) IsIdentity() bool {
	return p.v.Equal(pairingSuite.G1().Point().Null())
}

// Clone returns an independent copy
func (p *G1Point) Clone() *G1Point {
	return &G1Point{v: p.v.Clone()}
}

// Bytes returns the compressed encoding.
func (p *G2Point) Bytes() []byte {
	data, _ := p.v.MarshalBinary()
	return data
}

// Hex returns the 0x-prefixed compressed encoding.
func (p *G2Point) Hex() string {
	return "0x" + hex.EncodeToString(p.Bytes())
}

func (p *G2Point) String() string {
	return hex.EncodeToString(p.Bytes())
}

// Add returns p + other
func (p *G2Point) Add(other *G2Point) *G2Point {
	r := pairingSuite.G2().Point()
	return &G2Point{v: r.Add(p.v, other.v)}
}

// Mul returns scalar * p
func (p *G2Point) Mul(s *Scalar) *G2Point {
	r := pairingSuite.G2().Point()
	return &G2Point{v: r.Mul(kyberScalar(s), p.v)}
}

// Equal reports whether two points are the same group element
func (p *G2Point) Equal(other *G2Point) bool {
	return p.v.Equal(other.v)
}

// IsIdentity reports whether p is the group identity
func (p *G2Point) IsIdentity() bool {
	return p.v.Equal(pairingSuite.G2().Point().Null())
}

// Clone returns an independent copy
func (p *G2Point) Clone() *G2Point {
	return &G2Point{v: p.v.Clone()}
}
