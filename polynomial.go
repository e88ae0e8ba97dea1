package timelock

// Polynomial represents a polynomial over the scalar field
type Polynomial struct {
	coefficients []*Scalar
}

// NewRandomPolynomial creates a new random polynomial with given degree
// and constant term. Every coefficient above the constant term is drawn
// uniformly at random, so any fewer than degree+1 evaluations carry no
// information about the constant term.
func NewRandomPolynomial(degree int, constantTerm *Scalar) (*Polynomial, error) {
	if degree < 0 {
		return nil, ErrInvalidThreshold.WithDetails("polynomial degree must be non-negative")
	}

	coefficients := make([]*Scalar, degree+1)
	coefficients[0] = constantTerm.Clone()

	for i := 1; i <= degree; i++ {
		coeff, err := RandomScalar()
		if err != nil {
			return nil, err
		}
		coefficients[i] = coeff
	}

	return &Polynomial{coefficients: coefficients}, nil
}

// Evaluate evaluates the polynomial at a given point
func (p *Polynomial) Evaluate(x *Scalar) *Scalar {
	if len(p.coefficients) == 0 {
		return NewScalar(0)
	}

	// Horner's method: f(x) = a0 + x(a1 + x(a2 + x(a3 + ...)))
	result := p.coefficients[len(p.coefficients)-1].Clone()
	for i := len(p.coefficients) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}
	return result
}

// EvaluateAt evaluates the polynomial at a small integer x
func (p *Polynomial) EvaluateAt(x int64) *Scalar {
	return p.Evaluate(NewScalar(x))
}

// Degree returns the degree of the polynomial
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Zeroize clears the polynomial coefficients
func (p *Polynomial) Zeroize() {
	for _, coeff := range p.coefficients {
		if coeff != nil {
			coeff.Zeroize()
		}
	}
	for i := range p.coefficients {
		p.coefficients[i] = nil
	}
	p.coefficients = nil
}
