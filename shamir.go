package timelock

// Share is one piece of a t-of-n split secret
type Share struct {
	Index int     // x-coordinate, 1-based holder index
	Value *Scalar // y-coordinate, f(Index)
}

// NewShare creates a new share
func NewShare(index int, value *Scalar) *Share {
	return &Share{Index: index, Value: value}
}

// maxShares bounds the holder count so indices stay well inside a byte,
// matching the ledger's uint8 holder slots.
const maxShares = 255

// GenerateShares splits a secret into numShares shares of a
// threshold-of-numShares scheme. A random polynomial of degree
// threshold-1 with f(0) = secret is evaluated at x = 1..numShares; any
// threshold shares determine the secret uniquely, fewer reveal nothing.
func GenerateShares(secret *Scalar, numShares, threshold int) ([]*Share, error) {
	if threshold < 1 || threshold > numShares {
		return nil, ErrInvalidThreshold.
			WithContext("threshold", threshold).
			WithContext("num_shares", numShares)
	}
	if numShares > maxShares {
		return nil, ErrTooManyShares.WithContext("num_shares", numShares)
	}

	polynomial, err := NewRandomPolynomial(threshold-1, secret)
	if err != nil {
		return nil, err
	}
	defer polynomial.Zeroize()

	shares := make([]*Share, numShares)
	for i := 0; i < numShares; i++ {
		index := i + 1 // 1-based, x=0 holds the secret
		shares[i] = NewShare(index, polynomial.EvaluateAt(int64(index)))
	}
	return shares, nil
}

// ReconstructSecret reconstructs the secret from shares by Lagrange
// interpolation at x = 0. It is strict: fewer than threshold shares are
// rejected, because below the threshold every candidate secret is equally
// consistent with the inputs and interpolation would return garbage
// without any signal that it did.
func ReconstructSecret(shares []*Share, threshold int) (*Scalar, error) {
	if threshold < 1 {
		return nil, ErrInvalidThreshold.WithContext("threshold", threshold)
	}
	if len(shares) < threshold {
		return nil, ErrInsufficientShares.
			WithContext("need", threshold).
			WithContext("got", len(shares))
	}
	return interpolateAtZero(shares)
}

// ReconstructSecretLoose is the reference-compatible variant that only
// rejects fewer than two shares regardless of the scheme's threshold.
// Callers who know the threshold should use ReconstructSecret; this exists
// for cross-checking recordings of sessions produced by the original
// system, which enforced nothing stricter.
func ReconstructSecretLoose(shares []*Share) (*Scalar, error) {
	if len(shares) < 2 {
		return nil, ErrInsufficientShares.WithContext("got", len(shares))
	}
	return interpolateAtZero(shares)
}

func interpolateAtZero(shares []*Share) (*Scalar, error) {
	indexes := make([]int, len(shares))
	values := make([]*Scalar, len(shares))
	for i, share := range shares {
		if share.Index < 1 {
			return nil, ErrInvalidShareIndex.WithContext("index", share.Index)
		}
		indexes[i] = share.Index
		values[i] = share.Value
	}
	return interpolate(indexes, values, 0)
}

// lagrangeBasis computes, for each index i in indexes, the Lagrange basis
// value at x: prod over j != i of (x - j) * inverse(i - j) mod P.
func lagrangeBasis(indexes []int, x int64) ([]*Scalar, error) {
	seen := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if seen[i] {
			return nil, ErrDuplicateShareIndex.WithContext("index", i)
		}
		seen[i] = true
	}

	basis := make([]*Scalar, len(indexes))
	for a, i := range indexes {
		numerator := NewScalar(1)
		denominator := NewScalar(1)
		for _, j := range indexes {
			if i != j {
				numerator = numerator.Mul(NewScalar(x - int64(j)))
				denominator = denominator.Mul(NewScalar(int64(i - j)))
			}
		}
		denomInv, err := denominator.Invert()
		if err != nil {
			return nil, err
		}
		basis[a] = numerator.Mul(denomInv)
	}
	return basis, nil
}

// interpolate evaluates, at x, the unique polynomial of degree
// len(indexes)-1 passing through (indexes[i], values[i]).
func interpolate(indexes []int, values []*Scalar, x int64) (*Scalar, error) {
	basis, err := lagrangeBasis(indexes, x)
	if err != nil {
		return nil, err
	}
	result := NewScalar(0)
	for i := range values {
		result = result.Add(values[i].Mul(basis[i]))
	}
	return result, nil
}
