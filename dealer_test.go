package timelock

import (
	"bytes"
	"errors"
	"testing"
)

func setupHolders(t *testing.T, n int) ([]*KeyPair, []*G1Point) {
	t.Helper()
	keys := make([]*KeyPair, n)
	pubs := make([]*G1Point, n)
	for i := range keys {
		kp, err := GenerateKeyPair()
		if err != nil {
			t.Fatalf("failed to generate key pair %d: %v", i+1, err)
		}
		keys[i] = kp
		pubs[i] = kp.Public
	}
	return keys, pubs
}

func TestDealAndRecoverEndToEnd(t *testing.T) {
	keys, pubs := setupHolders(t, 5)

	deal, err := DealTimeLock(pubs, 3)
	if err != nil {
		t.Fatalf("failed to deal session: %v", err)
	}
	if len(deal.Key) != ScalarSize {
		t.Fatalf("expected %d-byte key, got %d", ScalarSize, len(deal.Key))
	}
	if len(deal.Alphas) != 2 {
		t.Fatalf("expected 2 alphas for holders 4 and 5, got %d", len(deal.Alphas))
	}

	// Every holder derives its term independently from G1R
	indexes := make([]int, len(keys))
	terms := make([]*Scalar, len(keys))
	for i, kp := range keys {
		indexes[i] = i + 1
		terms[i] = HolderTerm(kp.Private, deal.G1R)
	}

	key, err := RecomputeKey(indexes, terms, deal.Alphas, 3)
	if err != nil {
		t.Fatalf("hybrid recovery failed: %v", err)
	}
	if !bytes.Equal(key, deal.Key) {
		t.Fatal("recovered key does not match the dealt key")
	}
}

func TestDealRecoverFromEarlyHoldersOnly(t *testing.T) {
	keys, pubs := setupHolders(t, 5)

	deal, err := DealTimeLock(pubs, 3)
	if err != nil {
		t.Fatalf("failed to deal session: %v", err)
	}

	indexes := []int{1, 2, 3}
	terms := []*Scalar{
		HolderTerm(keys[0].Private, deal.G1R),
		HolderTerm(keys[1].Private, deal.G1R),
		HolderTerm(keys[2].Private, deal.G1R),
	}

	key, err := RecomputeKey(indexes, terms, nil, 3)
	if err != nil {
		t.Fatalf("early-only recovery failed: %v", err)
	}
	if !bytes.Equal(key, deal.Key) {
		t.Fatal("early holders alone should determine the key")
	}
}

func TestDealRecoverWithSilentEarlyHolder(t *testing.T) {
	// Holder 3 never responds; holder 4's alpha-masked term takes its
	// place in the interpolation prefix once the alphas are released.
	keys, pubs := setupHolders(t, 5)

	deal, err := DealTimeLock(pubs, 3)
	if err != nil {
		t.Fatalf("failed to deal session: %v", err)
	}

	indexes := []int{1, 2, 4}
	terms := []*Scalar{
		HolderTerm(keys[0].Private, deal.G1R),
		HolderTerm(keys[1].Private, deal.G1R),
		HolderTerm(keys[3].Private, deal.G1R),
	}

	key, err := RecomputeKey(indexes, terms, deal.Alphas, 3)
	if err != nil {
		t.Fatalf("recovery without holder 3 failed: %v", err)
	}
	if !bytes.Equal(key, deal.Key) {
		t.Fatal("recovered key does not match the dealt key")
	}
}

func TestDealtKeySealsBallots(t *testing.T) {
	_, pubs := setupHolders(t, 3)

	deal, err := DealTimeLock(pubs, 2)
	if err != nil {
		t.Fatalf("failed to deal session: %v", err)
	}

	salt := []byte("session-7")
	envelope, err := SealBallot([]byte("ballot: option A"), deal.Key, salt, SHA256HKDF)
	if err != nil {
		t.Fatalf("failed to seal: %v", err)
	}

	plaintext, err := OpenBallot(envelope, deal.Key, salt, SHA256HKDF)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	if string(plaintext) != "ballot: option A" {
		t.Fatalf("unexpected plaintext %q", plaintext)
	}
}

func TestHolderShareVerifies(t *testing.T) {
	keys, pubs := setupHolders(t, 3)

	deal, err := DealTimeLock(pubs, 2)
	if err != nil {
		t.Fatalf("failed to deal session: %v", err)
	}

	for i, kp := range keys {
		share := HolderSharePoint(kp.Private, deal.G1R)
		if !VerifyShare(share, kp.Public, deal.G2R) {
			t.Errorf("holder %d: valid share rejected", i+1)
		}
	}

	// A share only verifies against its own holder's public key
	share := HolderSharePoint(keys[0].Private, deal.G1R)
	if VerifyShare(share, keys[1].Public, deal.G2R) {
		t.Error("share verified against the wrong public key")
	}
}

func TestDealInvalidParameters(t *testing.T) {
	_, pubs := setupHolders(t, 3)

	if _, err := DealTimeLock(pubs, 4); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("expected ErrInvalidThreshold for t>n, got %v", err)
	}
	if _, err := DealTimeLock(pubs, 0); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("expected ErrInvalidThreshold for t=0, got %v", err)
	}
	if _, err := DealTimeLock(nil, 1); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("expected ErrInvalidThreshold for no holders, got %v", err)
	}
	if _, err := DealTimeLock([]*G1Point{pubs[0], nil, pubs[2]}, 2); !errors.Is(err, ErrMalformedPoint) {
		t.Errorf("expected ErrMalformedPoint for nil holder key, got %v", err)
	}
}

func TestDealsAreIndependent(t *testing.T) {
	_, pubs := setupHolders(t, 3)

	a, err := DealTimeLock(pubs, 2)
	if err != nil {
		t.Fatalf("failed to deal first session: %v", err)
	}
	b, err := DealTimeLock(pubs, 2)
	if err != nil {
		t.Fatalf("failed to deal second session: %v", err)
	}

	if bytes.Equal(a.Key, b.Key) {
		t.Error("two sessions produced the same key")
	}
	if a.G1R.Equal(b.G1R) {
		t.Error("two sessions produced the same session point")
	}
}
