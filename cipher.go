package timelock

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// KDFAlgorithm selects the hash construction used to derive the AEAD key
// from a recovered or dealt ballot key.
type KDFAlgorithm int

const (
	// SHA256HKDF uses HKDF over SHA-256 (default)
	SHA256HKDF KDFAlgorithm = iota
	// Blake2b uses Blake2b-256 with domain separation
	Blake2b
	// Shake256 uses the SHAKE256 XOF
	Shake256
	// Blake3 uses the BLAKE3 hash
	Blake3
)

// aeadKeySize is the AES-256 key size.
const aeadKeySize = 32

// kdfDomain separates ballot-key derivation from any other use of the
// same hash functions.
var kdfDomain = []byte("TIMELOCK_BALLOT_KEY_V1")

// DeriveBallotKey derives the 32-byte AEAD key from recovered key
// material. The salt is an explicit parameter: the cipher layer keeps no
// per-instance salt or counter state, so the same (key, salt) pair always
// derives the same AEAD key on any replica.
func DeriveBallotKey(key, salt []byte, algorithm KDFAlgorithm) ([]byte, error) {
	switch algorithm {
	case SHA256HKDF:
		out := make([]byte, aeadKeySize)
		reader := hkdf.New(sha256.New, key, salt, kdfDomain)
		if _, err := io.ReadFull(reader, out); err != nil {
			return nil, WrapError(err, ErrorCategoryEncryption, ErrorSeverityHigh,
				"KDF_FAILED", "HKDF expansion failed")
		}
		return out, nil

	case Blake2b:
		hasher, err := blake2b.New256(nil)
		if err != nil {
			return nil, WrapError(err, ErrorCategoryEncryption, ErrorSeverityHigh,
				"KDF_FAILED", "blake2b initialization failed")
		}
		hasher.Write(kdfDomain)
		hasher.Write(salt)
		hasher.Write(key)
		return hasher.Sum(nil), nil

	case Shake256:
		shake := sha3.NewShake256()
		shake.Write(kdfDomain)
		shake.Write(salt)
		shake.Write(key)
		out := make([]byte, aeadKeySize)
		if _, err := io.ReadFull(shake, out); err != nil {
			return nil, WrapError(err, ErrorCategoryEncryption, ErrorSeverityHigh,
				"KDF_FAILED", "SHAKE256 read failed")
		}
		return out, nil

	case Blake3:
		hasher := blake3.New()
		hasher.Write(kdfDomain)
		hasher.Write(salt)
		hasher.Write(key)
		return hasher.Sum(nil), nil

	default:
		return nil, ErrUnknownKDF.WithContext("algorithm", int(algorithm))
	}
}

// Encrypt seals a ballot payload under a 32-byte key with AES-256-GCM.
// The nonce is drawn fresh from a cryptographically secure source on
// every call; it is never derived from a counter and never reused for a
// key, which is what makes concurrent sealing under one key safe.
func Encrypt(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, ErrRandomnessGeneration.WithCause(err)
	}

	return aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Decrypt opens a sealed ballot. An authentication failure, whether from
// a wrong key or a tampered ciphertext, reports ErrInvalidKeyOrCorruptData
// and never partially decrypted data.
func Decrypt(ciphertext, key, nonce []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, ErrInvalidNonceLength.WithContext("length", len(nonce))
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidKeyOrCorruptData.WithCause(err)
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != aeadKeySize {
		return nil, ErrInvalidKeyLength.WithContext("length", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, WrapError(err, ErrorCategoryEncryption, ErrorSeverityHigh,
			"CIPHER_INIT_FAILED", "AES initialization failed")
	}
	return cipher.NewGCM(block)
}
