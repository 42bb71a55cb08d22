package provision

import (
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"

	"sealgram/internal/crypto"
	"sealgram/internal/domain"
	"sealgram/internal/util/memzero"
)

const (
	// DefaultInfo is the HKDF domain-separation label for the current
	// protocol version. Future versions pass their own label to HKDF.
	DefaultInfo = "provision-v1"
	// KeySize is the derived shared-key length in bytes.
	KeySize = domain.KeySize
)

// HKDF derives length bytes from keyMaterial with HKDF-SHA256 and an
// empty salt. The default call is HKDF(ikm, DefaultInfo, KeySize);
// custom info/length are accepted for future protocol versions.
func HKDF(keyMaterial []byte, info string, length int) ([]byte, error) {
	return crypto.DeriveKey(keyMaterial, nil, []byte(info), length)
}

// DeriveSharedKey computes the one-time linking key:
// HKDF(ECDH(ephemeralPrivate, otherPublic) || presharedSecret).
// Both devices run this with their own ephemeral private key and the
// peer's ephemeral public key and arrive at the same key.
func DeriveSharedKey(ephemeralPrivB64, otherPubB64, presharedB64 string) ([KeySize]byte, error) {
	var key [KeySize]byte

	priv, err := decodeKey32(ephemeralPrivB64)
	if err != nil {
		return key, fmt.Errorf("ephemeral private key: %w", err)
	}
	pub, err := decodeKey32(otherPubB64)
	if err != nil {
		return key, fmt.Errorf("peer public key: %w", err)
	}
	preshared, err := crypto.FromB64(presharedB64)
	if err != nil {
		return key, fmt.Errorf("preshared secret: %w", err)
	}

	shared, err := crypto.DH(domain.PrivateKey(priv), domain.PublicKey(pub))
	if err != nil {
		return key, fmt.Errorf("key agreement: %w", err)
	}

	ikm := make([]byte, 0, len(shared)+len(preshared))
	ikm = append(ikm, shared[:]...)
	ikm = append(ikm, preshared...)
	derived, err := HKDF(ikm, DefaultInfo, KeySize)
	memzero.Zero(ikm)
	memzero.Zero(shared[:])
	if err != nil {
		return key, fmt.Errorf("derive linking key: %w", err)
	}
	copy(key[:], derived)
	memzero.Zero(derived)
	return key, nil
}

// Seal authenticated-encrypts the JSON encoding of payload under key.
func Seal(key [KeySize]byte, payload any) (domain.SealedPayload, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.SealedPayload{}, fmt.Errorf("encode payload: %w", err)
	}

	nonceRaw, err := crypto.RandomBytes(crypto.BoxNonceSize)
	if err != nil {
		return domain.SealedPayload{}, fmt.Errorf("nonce: %w", err)
	}
	var nonce [crypto.BoxNonceSize]byte
	copy(nonce[:], nonceRaw)

	sealed := secretbox.Seal(nil, raw, &nonce, &key)
	return domain.SealedPayload{
		Nonce:      crypto.B64(nonce[:]),
		Ciphertext: crypto.B64(sealed),
	}, nil
}

// Open reverses Seal and returns the payload in encoding/json's
// generic representation. Authentication failure surfaces as
// domain.ErrProvisioningDecryption.
func Open(key [KeySize]byte, nonceB64, ciphertextB64 string) (any, error) {
	var payload any
	if err := OpenInto(key, nonceB64, ciphertextB64, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// OpenInto is Open for callers that know the payload shape.
func OpenInto(key [KeySize]byte, nonceB64, ciphertextB64 string, out any) error {
	nonceRaw, err := crypto.FromB64(nonceB64)
	if err != nil {
		return fmt.Errorf("decode nonce: %w", err)
	}
	if len(nonceRaw) != crypto.BoxNonceSize {
		return fmt.Errorf("nonce is %d bytes, want %d", len(nonceRaw), crypto.BoxNonceSize)
	}
	sealed, err := crypto.FromB64(ciphertextB64)
	if err != nil {
		return fmt.Errorf("decode ciphertext: %w", err)
	}

	var nonce [crypto.BoxNonceSize]byte
	copy(nonce[:], nonceRaw)

	raw, ok := secretbox.Open(nil, sealed, &nonce, &key)
	if !ok {
		return domain.ErrProvisioningDecryption
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

func decodeKey32(b64 string) ([KeySize]byte, error) {
	var key [KeySize]byte
	raw, err := crypto.FromB64(b64)
	if err != nil {
		return key, err
	}
	if len(raw) != KeySize {
		return key, fmt.Errorf("key is %d bytes, want %d", len(raw), KeySize)
	}
	copy(key[:], raw)
	return key, nil
}
