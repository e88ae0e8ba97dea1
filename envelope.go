package timelock

import (
	"encoding/hex"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

// SecretEnvelope is a sealed ballot: ciphertext plus the nonce it was
// sealed under. It is bound to one recovery key and meant to be opened
// exactly once; the nonce must never repeat for a given key, which
// Encrypt guarantees by drawing it fresh per call.
type SecretEnvelope struct {
	Ciphertext []byte `cbor:"ciphertext" json:"ciphertext"`
	Nonce      []byte `cbor:"nonce" json:"nonce"`
}

// SealBallot derives the AEAD key from the ballot key material and the
// explicit salt, then seals the payload.
func SealBallot(plaintext, key, salt []byte, algorithm KDFAlgorithm) (*SecretEnvelope, error) {
	derived, err := DeriveBallotKey(key, salt, algorithm)
	if err != nil {
		return nil, err
	}
	ciphertext, nonce, err := Encrypt(plaintext, derived)
	if err != nil {
		return nil, err
	}
	return &SecretEnvelope{Ciphertext: ciphertext, Nonce: nonce}, nil
}

// OpenBallot derives the AEAD key the same way and opens the envelope.
func OpenBallot(envelope *SecretEnvelope, key, salt []byte, algorithm KDFAlgorithm) ([]byte, error) {
	derived, err := DeriveBallotKey(key, salt, algorithm)
	if err != nil {
		return nil, err
	}
	return Decrypt(envelope.Ciphertext, derived, envelope.Nonce)
}

// CiphertextHex returns the hex boundary encoding of the ciphertext.
func (e *SecretEnvelope) CiphertextHex() string {
	return hex.EncodeToString(e.Ciphertext)
}

// NonceHex returns the hex boundary encoding of the nonce.
func (e *SecretEnvelope) NonceHex() string {
	return hex.EncodeToString(e.Nonce)
}

// EnvelopeFromHex rebuilds an envelope from the hex boundary encodings,
// with or without 0x prefixes.
func EnvelopeFromHex(ciphertextHex, nonceHex string) (*SecretEnvelope, error) {
	ciphertext, err := hex.DecodeString(strings.TrimPrefix(ciphertextHex, "0x"))
	if err != nil {
		return nil, ErrInvalidHex.WithCause(err)
	}
	nonce, err := hex.DecodeString(strings.TrimPrefix(nonceHex, "0x"))
	if err != nil {
		return nil, ErrInvalidHex.WithCause(err)
	}
	return &SecretEnvelope{Ciphertext: ciphertext, Nonce: nonce}, nil
}

// envelopeWire strips the envelope's BinaryMarshaler methods so the cbor
// codec encodes the struct tags instead of calling back into
// MarshalBinary.
type envelopeWire SecretEnvelope

// MarshalBinary encodes the envelope in CBOR for the document-store
// cache that mirrors ledger state.
func (e *SecretEnvelope) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*envelopeWire)(e))
}

// UnmarshalBinary decodes a CBOR envelope.
func (e *SecretEnvelope) UnmarshalBinary(data []byte) error {
	if err := cbor.Unmarshal(data, (*envelopeWire)(e)); err != nil {
		return WrapError(err, ErrorCategoryEncoding, ErrorSeverityMedium,
			"ENVELOPE_DECODE_FAILED", "envelope is not valid CBOR")
	}
	return nil
}

// SessionKeyFromLabel derives a ballot key scalar from a public session
// label, typically the decryption timestamp.
//
// Known limitation, kept for compatibility with already-published
// sessions: the label is public, so anyone can derive this key without a
// single share, which defeats the threshold-secrecy goal. New sessions
// should use DealTimeLock, whose key depends on the session randomness
// and the holders' private keys.
func SessionKeyFromLabel(label []byte) *Scalar {
	return HashToScalar(label)
}
