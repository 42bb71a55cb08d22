package crypto_test

import (
	"bytes"
	"errors"
	"testing"

	"sealgram/internal/crypto"
	"sealgram/internal/domain"
)

func makeSessionKey(t *testing.T) domain.SessionKey {
	t.Helper()
	raw, err := crypto.RandomBytes(domain.KeySize)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	var key domain.SessionKey
	copy(key[:], raw)
	return key
}

func TestRandomBytes(t *testing.T) {
	a, err := crypto.RandomBytes(32)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	b, err := crypto.RandomBytes(32)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("two random draws are identical")
	}
	if _, err := crypto.RandomBytes(0); err == nil {
		t.Fatal("want error for n=0")
	}
}

func TestSymmetricRoundTrip(t *testing.T) {
	key := makeSessionKey(t)
	nonce, err := crypto.RandomBytes(crypto.GCMNonceSize)
	if err != nil {
		t.Fatalf("RandomBytes: %v", err)
	}
	plaintext := []byte("the quick brown fox")

	cipherBytes, tag, err := crypto.SymmetricEncrypt(key, nonce, plaintext)
	if err != nil {
		t.Fatalf("SymmetricEncrypt: %v", err)
	}
	if len(cipherBytes) != len(plaintext) {
		t.Fatalf("cipher length %d, want %d", len(cipherBytes), len(plaintext))
	}
	if len(tag) != crypto.GCMTagSize {
		t.Fatalf("tag length %d, want %d", len(tag), crypto.GCMTagSize)
	}

	got, err := crypto.SymmetricDecrypt(key, nonce, tag, cipherBytes)
	if err != nil {
		t.Fatalf("SymmetricDecrypt: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("plaintext mismatch: %q", got)
	}
}

func TestSymmetricDecrypt_Tamper(t *testing.T) {
	key := makeSessionKey(t)
	nonce, _ := crypto.RandomBytes(crypto.GCMNonceSize)
	cipherBytes, tag, err := crypto.SymmetricEncrypt(key, nonce, []byte("payload"))
	if err != nil {
		t.Fatalf("SymmetricEncrypt: %v", err)
	}

	badCipher := append([]byte(nil), cipherBytes...)
	badCipher[0] ^= 0x01
	if _, err := crypto.SymmetricDecrypt(key, nonce, tag, badCipher); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("tampered cipher: got %v, want ErrAuthentication", err)
	}

	badTag := append([]byte(nil), tag...)
	badTag[crypto.GCMTagSize-1] ^= 0x80
	if _, err := crypto.SymmetricDecrypt(key, nonce, badTag, cipherBytes); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("tampered tag: got %v, want ErrAuthentication", err)
	}
}

func TestBoxSealOpen(t *testing.T) {
	sender, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	recipient, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	var nonce [crypto.BoxNonceSize]byte
	raw, _ := crypto.RandomBytes(crypto.BoxNonceSize)
	copy(nonce[:], raw)

	msg := []byte("session key material")
	sealed := crypto.BoxSeal(msg, &nonce, recipient.Public, sender.Private)
	if len(sealed) != len(msg)+crypto.BoxOverhead {
		t.Fatalf("sealed length %d, want %d", len(sealed), len(msg)+crypto.BoxOverhead)
	}

	opened, ok := crypto.BoxOpen(sealed, &nonce, sender.Public, recipient.Private)
	if !ok {
		t.Fatal("BoxOpen failed on valid input")
	}
	if !bytes.Equal(opened, msg) {
		t.Fatalf("message mismatch: %q", opened)
	}

	// Wrong recipient key must fail, not return garbage.
	other, _ := crypto.GenerateKeyPair()
	if _, ok := crypto.BoxOpen(sealed, &nonce, sender.Public, other.Private); ok {
		t.Fatal("BoxOpen succeeded with wrong private key")
	}
}

func TestDHSymmetry(t *testing.T) {
	a, _ := crypto.GenerateKeyPair()
	b, _ := crypto.GenerateKeyPair()

	ab, err := crypto.DH(a.Private, b.Public)
	if err != nil {
		t.Fatalf("DH: %v", err)
	}
	ba, err := crypto.DH(b.Private, a.Public)
	if err != nil {
		t.Fatalf("DH: %v", err)
	}
	if ab != ba {
		t.Fatal("shared secrets differ")
	}

	if _, err := crypto.DH(a.Private, domain.PublicKey{}); err == nil {
		t.Fatal("want error for zero public key")
	}
}

func TestDeriveKey(t *testing.T) {
	ikm := []byte("input key material")

	a, err := crypto.DeriveKey(ikm, nil, []byte("message-session"), 32)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	if len(a) != 32 {
		t.Fatalf("derived length %d, want 32", len(a))
	}

	// Deterministic for the same inputs.
	b, _ := crypto.DeriveKey(ikm, nil, []byte("message-session"), 32)
	if !bytes.Equal(a, b) {
		t.Fatal("same inputs derived different keys")
	}

	// Different info labels must never be interchangeable.
	c, _ := crypto.DeriveKey(ikm, nil, []byte("provision-v1"), 32)
	if bytes.Equal(a, c) {
		t.Fatal("different info labels derived the same key")
	}

	long, err := crypto.DeriveKey(ikm, nil, []byte("x"), 64)
	if err != nil || len(long) != 64 {
		t.Fatalf("64-byte derivation: len=%d err=%v", len(long), err)
	}
}
