package timelock

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
)

func TestG1AffineRoundTrip(t *testing.T) {
	points := []*G1Point{G1Generator()}
	for i := 0; i < 4; i++ {
		s, err := RandomScalar()
		if err != nil {
			t.Fatalf("failed to generate scalar: %v", err)
		}
		points = append(points, G1Generator().Mul(s))
	}

	for i, p := range points {
		x, y, err := p.Affine()
		if err != nil {
			t.Fatalf("point %d: affine decomposition failed: %v", i, err)
		}
		rebuilt, err := G1FromAffine(x, y)
		if err != nil {
			t.Fatalf("point %d: rebuild from affine failed: %v", i, err)
		}
		if !rebuilt.Equal(p) {
			t.Fatalf("point %d: affine round trip changed the point", i)
		}
	}
}

func TestG1FromAffineRejectsBadCoordinates(t *testing.T) {
	x, y, err := G1Generator().Affine()
	if err != nil {
		t.Fatalf("affine decomposition failed: %v", err)
	}

	// Off the curve: y^2 != x^3 + 4
	badY := new(big.Int).Add(y, big.NewInt(1))
	if _, err := G1FromAffine(x, badY); !errors.Is(err, ErrMalformedPoint) {
		t.Fatalf("expected ErrMalformedPoint for off-curve y, got %v", err)
	}

	// Out of field range
	if _, err := G1FromAffine(baseFieldModulus, y); !errors.Is(err, ErrMalformedPoint) {
		t.Fatalf("expected ErrMalformedPoint for x >= p, got %v", err)
	}
	if _, err := G1FromAffine(big.NewInt(-1), y); !errors.Is(err, ErrMalformedPoint) {
		t.Fatalf("expected ErrMalformedPoint for negative x, got %v", err)
	}
	if _, err := G1FromAffine(nil, y); !errors.Is(err, ErrMalformedPoint) {
		t.Fatalf("expected ErrMalformedPoint for nil x, got %v", err)
	}
}

func TestPointDecodingLengths(t *testing.T) {
	if _, err := G1FromBytes(make([]byte, 47)); !errors.Is(err, ErrInvalidPointLength) {
		t.Errorf("expected ErrInvalidPointLength for short G1 encoding, got %v", err)
	}
	if _, err := G1FromBytes(make([]byte, 96)); !errors.Is(err, ErrInvalidPointLength) {
		t.Errorf("expected ErrInvalidPointLength for oversize G1 encoding, got %v", err)
	}
	if _, err := G2FromBytes(make([]byte, 48)); !errors.Is(err, ErrInvalidPointLength) {
		t.Errorf("expected ErrInvalidPointLength for short G2 encoding, got %v", err)
	}

	// Right length, not a valid compressed point
	junk := bytes.Repeat([]byte{0xff}, G1PointSize)
	if _, err := G1FromBytes(junk); !errors.Is(err, ErrMalformedPoint) {
		t.Errorf("expected ErrMalformedPoint for junk G1 bytes, got %v", err)
	}
}

func TestPointHexRoundTrip(t *testing.T) {
	s, err := RandomScalar()
	if err != nil {
		t.Fatalf("failed to generate scalar: %v", err)
	}

	p1 := G1Generator().Mul(s)
	decoded1, err := G1FromHex(p1.Hex())
	if err != nil {
		t.Fatalf("G1 hex round trip failed: %v", err)
	}
	if !decoded1.Equal(p1) {
		t.Fatal("G1 hex round trip changed the point")
	}

	p2 := G2Generator().Mul(s)
	decoded2, err := G2FromHex(p2.Hex())
	if err != nil {
		t.Fatalf("G2 hex round trip failed: %v", err)
	}
	if !decoded2.Equal(p2) {
		t.Fatal("G2 hex round trip changed the point")
	}

	if _, err := G1FromHex("0xzz"); !errors.Is(err, ErrInvalidHex) {
		t.Fatalf("expected ErrInvalidHex, got %v", err)
	}
	if _, err := G2FromHex("nope"); !errors.Is(err, ErrInvalidHex) {
		t.Fatalf("expected ErrInvalidHex, got %v", err)
	}
}

func TestPointArithmetic(t *testing.T) {
	a, err := RandomScalar()
	if err != nil {
		t.Fatalf("failed to generate scalar: %v", err)
	}
	b, err := RandomScalar()
	if err != nil {
		t.Fatalf("failed to generate scalar: %v", err)
	}

	// (a*G)*b == (a*b)*G in both groups
	ab := a.Mul(b)
	if !G1Generator().Mul(a).Mul(b).Equal(G1Generator().Mul(ab)) {
		t.Error("G1 scalar multiplication is not associative with field multiplication")
	}
	if !G2Generator().Mul(a).Mul(b).Equal(G2Generator().Mul(ab)) {
		t.Error("G2 scalar multiplication is not associative with field multiplication")
	}

	// a*G + b*G == (a+b)*G
	sum := G1Generator().Mul(a).Add(G1Generator().Mul(b))
	if !sum.Equal(G1Generator().Mul(a.Add(b))) {
		t.Error("G1 addition disagrees with scalar addition")
	}

	// P + (-P) is the identity
	p := G1Generator().Mul(a)
	if !p.Add(p.Negate()).IsIdentity() {
		t.Error("point plus its negation is not the identity")
	}
	if G1Generator().IsIdentity() {
		t.Error("generator reported as identity")
	}
}

func TestGeneratedKeyPair(t *testing.T) {
	kp, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	if kp.Private.IsZero() {
		t.Fatal("generated a zero private key")
	}
	if !kp.Public.Equal(G1Generator().Mul(kp.Private)) {
		t.Fatal("public key does not match private key")
	}
	if kp.Public.IsIdentity() {
		t.Fatal("public key is the identity")
	}

	other, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	if kp.Private.Equal(other.Private) {
		t.Fatal("two generated key pairs share a private key")
	}
}

func TestPointCloneIndependence(t *testing.T) {
	p := G1Generator().Mul(NewScalar(7))
	clone := p.Clone()
	if !clone.Equal(p) {
		t.Fatal("clone differs from original")
	}
	moved := clone.Add(G1Generator())
	if moved.Equal(p) {
		t.Fatal("adding to a clone produced the original point")
	}
	if !p.Equal(G1Generator().Mul(NewScalar(7))) {
		t.Fatal("original point mutated by operations on its clone")
	}
}
