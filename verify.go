package timelock

// VerifyShare checks a submitted share point against a holder's public
// key and the session point via the pairing equality
//
//	e(share, G2) == e(publicKey, sessionPoint)
//
// which holds exactly when share = sk * G1R for the sk behind publicKey.
// Verification is fail-closed: malformed inputs and curve arithmetic
// failures all report false, never an error or a panic, so verifying one
// share can never abort verification of others.
func VerifyShare(share, publicKey *G1Point, sessionPoint *G2Point) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if share == nil || publicKey == nil || sessionPoint == nil {
		return false
	}
	if share.v == nil || publicKey.v == nil || sessionPoint.v == nil {
		return false
	}

	left := pairingSuite.Pair(share.v, pairingSuite.G2().Point().Base())
	right := pairingSuite.Pair(publicKey.v, sessionPoint.v)
	return left.Equal(right)
}

// VerifyShareBytes is the boundary form of VerifyShare: compressed point
// encodings in, boolean out. Decoding failures report false.
func VerifyShareBytes(share, publicKey, sessionPoint []byte) bool {
	s, err := G1FromBytes(share)
	if err != nil {
		return false
	}
	pk, err := G1FromBytes(publicKey)
	if err != nil {
		return false
	}
	g2r, err := G2FromBytes(sessionPoint)
	if err != nil {
		return false
	}
	return VerifyShare(s, pk, g2r)
}

// ShareSubmission pairs a holder index with its submitted share point for
// batch verification.
type ShareSubmission struct {
	Index int
	Share *G1Point
}

// VerifySubmissions verifies a batch of share submissions against the
// holders' public keys (keyed by index) and the session point. Each
// result is independent: one bad submission never taints another.
func VerifySubmissions(submissions []ShareSubmission, publicKeys map[int]*G1Point, sessionPoint *G2Point) []bool {
	results := make([]bool, len(submissions))
	for i, sub := range submissions {
		results[i] = VerifyShare(sub.Share, publicKeys[sub.Index], sessionPoint)
	}
	return results
}
