package timelock

import (
	"encoding/hex"
	"strings"
)

// AlphaValue is the 32-byte XOR mask published for a holder index above
// the threshold, released only at or after decryption time. It is a raw
// byte string on purpose: XOR of two field encodings may exceed the field
// order, so an alpha cannot be held reduced without destroying the mask.
type AlphaValue []byte

// AlphaFromHex decodes an optionally 0x-prefixed, possibly unpadded hex
// alpha into its fixed 32-byte form.
func AlphaFromHex(s string) (AlphaValue, error) {
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
	out := make(AlphaValue, ScalarSize)
	copy(out[ScalarSize-len(data):], data)
	return out, nil
}

// Hex returns the 0x-prefixed fixed-width encoding.
func (a AlphaValue) Hex() string {
	return "0x" + hex.EncodeToString(a.padded())
}

func (a AlphaValue) padded() []byte {
	if len(a) == ScalarSize {
		return a
	}
	out := make([]byte, ScalarSize)
	copy(out[ScalarSize-len(a):], a)
	return out
}

// ReconstructionContext is an immutable snapshot of everything the hybrid
// recovery needs: the ordered holder indices, their submitted share
// values, the released alpha masks for indices above the threshold, and
// the threshold itself.
//
// Ordering invariant: Indexes must be sorted strictly ascending. The
// interpolation basis is computed from the first Threshold entries,
// whichever indices those are; a silent holder only shifts later indices
// into the prefix, where alpha-masked submissions are unmasked before
// interpolation.
type ReconstructionContext struct {
	Indexes   []int
	Shares    []*Scalar
	Alphas    []AlphaValue
	Threshold int
}

// Validate checks the shape and ordering invariants. It never mutates the
// context.
func (rc *ReconstructionContext) Validate() error {
	t := rc.Threshold
	if t < 1 {
		return ErrInvalidThreshold.WithContext("threshold", t)
	}
	if len(rc.Indexes) != len(rc.Shares) {
		return ErrInvalidSessionParams.WithDetails("index and share counts differ")
	}
	if len(rc.Indexes) < t {
		return ErrInsufficientShares.
			WithContext("need", t).
			WithContext("got", len(rc.Indexes))
	}

	for i, idx := range rc.Indexes {
		if idx < 1 {
			return ErrInvalidShareIndex.WithContext("index", idx)
		}
		if i > 0 && idx <= rc.Indexes[i-1] {
			return ErrIndexOrder.WithDetails("indexes not strictly ascending")
		}
		if idx > t {
			pos := idx - 1 - t
			if pos >= len(rc.Alphas) || rc.Alphas[pos] == nil {
				return ErrMissingAlpha.WithContext("index", idx)
			}
			if len(rc.Alphas[pos]) > ScalarSize {
				return ErrInvalidScalarLength.WithContext("alpha_length", len(rc.Alphas[pos]))
			}
		}
	}
	return nil
}

// terms resolves each position into its interpolation term: shares at
// early indices directly, late shares unmasked by XOR with their alpha.
// The XOR result is reinterpreted as a big-endian integer; it may exceed
// the field order and is reduced, which commutes with the field
// arithmetic downstream.
func (rc *ReconstructionContext) terms() []*Scalar {
	out := make([]*Scalar, len(rc.Indexes))
	for i, idx := range rc.Indexes {
		if idx <= rc.Threshold {
			out[i] = rc.Shares[i]
			continue
		}
		alpha := rc.Alphas[idx-1-rc.Threshold].padded()
		out[i] = scalarFromBytesReduced(xorBytes(rc.Shares[i].Bytes(), alpha))
	}
	return out
}

// RecoverSecret runs the hybrid reconstruction and returns the secret
// scalar. The Lagrange basis at x=0 comes from the first Threshold
// entries of the sorted index list, whether those are direct or
// alpha-unmasked terms.
func (rc *ReconstructionContext) RecoverSecret() (*Scalar, error) {
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	t := rc.Threshold
	terms := rc.terms()
	return interpolate(rc.Indexes[:t], terms[:t], 0)
}

// RecoverKey runs the hybrid reconstruction and encodes the secret as a
// 32-byte big-endian zero-padded symmetric key.
func (rc *ReconstructionContext) RecoverKey() ([]byte, error) {
	secret, err := rc.RecoverSecret()
	if err != nil {
		return nil, err
	}
	return secret.Bytes(), nil
}

// RecomputeKey reconstructs the 32-byte ballot key from ordered holder
// submissions. Holders at indices within the threshold contribute their
// share directly; holders beyond it contribute a value that is useless
// until the matching alpha is released, which is the whole time gate.
func RecomputeKey(indexes []int, shares []*Scalar, alphas []AlphaValue, threshold int) ([]byte, error) {
	rc := &ReconstructionContext{
		Indexes:   indexes,
		Shares:    shares,
		Alphas:    alphas,
		Threshold: threshold,
	}
	return rc.RecoverKey()
}
