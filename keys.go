package timelock

// KeyPair holds a secret holder's key material. The private scalar must
// never leave the holder: it has no JSON tags and String redacts it.
type KeyPair struct {
	Private *Scalar
	Public  *G1Point
}

// GenerateKeyPair generates a holder key pair over G1. The private scalar
// is drawn uniformly from [1, P-1]; the public point is priv * G1.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := randomNonZeroScalar()
	if err != nil {
		return nil, err
	}
	return &KeyPair{
		Private: priv,
		Public:  G1Generator().Mul(priv),
	}, nil
}

// String prints only the public half.
func (kp *KeyPair) String() string {
	return "KeyPair(public=" + kp.Public.String() + ")"
}

// Zeroize clears the private scalar.
func (kp *KeyPair) Zeroize() {
	if kp.Private != nil {
		kp.Private.Zeroize()
	}
}
