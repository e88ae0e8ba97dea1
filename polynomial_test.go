package timelock

import (
	"errors"
	"testing"
)

func TestPolynomialConstantTerm(t *testing.T) {
	secret := NewScalar(424242)
	poly, err := NewRandomPolynomial(3, secret)
	if err != nil {
		t.Fatalf("failed to create polynomial: %v", err)
	}
	defer poly.Zeroize()

	if poly.Degree() != 3 {
		t.Fatalf("expected degree 3, got %d", poly.Degree())
	}
	if !poly.EvaluateAt(0).Equal(secret) {
		t.Fatal("f(0) does not equal the constant term")
	}
}

func TestPolynomialEvaluationConsistency(t *testing.T) {
	poly, err := NewRandomPolynomial(2, NewScalar(7))
	if err != nil {
		t.Fatalf("failed to create polynomial: %v", err)
	}
	defer poly.Zeroize()

	for x := int64(1); x <= 5; x++ {
		a := poly.EvaluateAt(x)
		b := poly.Evaluate(NewScalar(x))
		if !a.Equal(b) {
			t.Fatalf("EvaluateAt(%d) disagrees with Evaluate", x)
		}
	}
}

func TestDegreeZeroPolynomialIsConstant(t *testing.T) {
	secret := NewScalar(99)
	poly, err := NewRandomPolynomial(0, secret)
	if err != nil {
		t.Fatalf("failed to create polynomial: %v", err)
	}
	for x := int64(0); x < 4; x++ {
		if !poly.EvaluateAt(x).Equal(secret) {
			t.Fatalf("degree-0 polynomial not constant at x=%d", x)
		}
	}
}

func TestPolynomialRandomness(t *testing.T) {
	secret := NewScalar(1)
	p1, err := NewRandomPolynomial(2, secret)
	if err != nil {
		t.Fatalf("failed to create polynomial: %v", err)
	}
	p2, err := NewRandomPolynomial(2, secret)
	if err != nil {
		t.Fatalf("failed to create polynomial: %v", err)
	}
	// Same constant term, independently random higher coefficients
	if p1.EvaluateAt(1).Equal(p2.EvaluateAt(1)) && p1.EvaluateAt(2).Equal(p2.EvaluateAt(2)) {
		t.Fatal("two random polynomials agree at multiple points")
	}
}

func TestNegativeDegreeRejected(t *testing.T) {
	if _, err := NewRandomPolynomial(-1, NewScalar(1)); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
}

func TestPolynomialZeroize(t *testing.T) {
	poly, err := NewRandomPolynomial(2, NewScalar(5))
	if err != nil {
		t.Fatalf("failed to create polynomial: %v", err)
	}
	poly.Zeroize()
	if poly.Degree() != -1 {
		t.Fatal("coefficients survive zeroization")
	}
}
