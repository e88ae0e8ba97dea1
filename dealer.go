package timelock

// TimeLockDeal is the dealer's output for one vote session: the ballot
// key, the two session points published to the ledger, and the alpha
// masks for holders beyond the threshold. The session scalar r itself is
// discarded; holders recompute their term from G1R and their private key.
type TimeLockDeal struct {
	Key       []byte       // 32-byte ballot key, f(0)
	G1R       *G1Point     // r * G1, holder side of the Diffie-Hellman
	G2R       *G2Point     // r * G2, pairing side of share verification
	Alphas    []AlphaValue // masks for indices threshold+1..n, in order
	Threshold int
}

// DealTimeLock sets up a time-locked session for the given holder public
// keys (holder i has 1-based index i+1 in the slice order).
//
// A fresh session scalar r yields a shared term per holder,
// term_i = HashToScalar(r * pk_i), which holder i can equally derive as
// HolderTerm(sk_i, G1R). The unique polynomial f of degree threshold-1
// through the first threshold terms defines the ballot key f(0). Holders
// beyond the threshold get alpha_i = f(i) XOR term_i: their submission is
// worthless until the ledger releases the alphas at decryption time,
// while holders within the threshold can contribute immediately.
func DealTimeLock(holderKeys []*G1Point, threshold int) (*TimeLockDeal, error) {
	n := len(holderKeys)
	if threshold < 1 || threshold > n {
		return nil, ErrInvalidThreshold.
			WithContext("threshold", threshold).
			WithContext("holders", n)
	}
	if n > maxShares {
		return nil, ErrTooManyShares.WithContext("holders", n)
	}

	r, err := randomNonZeroScalar()
	if err != nil {
		return nil, err
	}
	defer r.Zeroize()

	g1r := G1Generator().Mul(r)
	g2r := G2Generator().Mul(r)

	terms := make([]*Scalar, n)
	for i, pk := range holderKeys {
		if pk == nil {
			return nil, ErrMalformedPoint.WithContext("holder_index", i+1)
		}
		terms[i] = HashToScalar(pk.Mul(r).Bytes())
	}

	prefix := make([]int, threshold)
	for i := range prefix {
		prefix[i] = i + 1
	}

	key, err := interpolate(prefix, terms[:threshold], 0)
	if err != nil {
		return nil, err
	}

	alphas := make([]AlphaValue, 0, n-threshold)
	for idx := threshold + 1; idx <= n; idx++ {
		fi, err := interpolate(prefix, terms[:threshold], int64(idx))
		if err != nil {
			return nil, err
		}
		alphas = append(alphas, xorBytes(fi.Bytes(), terms[idx-1].Bytes()))
	}

	return &TimeLockDeal{
		Key:       key.Bytes(),
		G1R:       g1r,
		G2R:       g2r,
		Alphas:    alphas,
		Threshold: threshold,
	}, nil
}

// HolderTerm is the scalar a secret holder submits for key recovery:
// the hash of the Diffie-Hellman value sk * G1R, identical to the
// dealer's r * pk.
func HolderTerm(private *Scalar, g1r *G1Point) *Scalar {
	return HashToScalar(g1r.Mul(private).Bytes())
}

// HolderSharePoint is the pairing-verifiable form of a holder's
// contribution, sk * G1R. VerifyShare checks it against the holder's
// public key and the session's G2R.
func HolderSharePoint(private *Scalar, g1r *G1Point) *G1Point {
	return g1r.Mul(private)
}
