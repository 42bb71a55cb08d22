package envelope

import (
	"fmt"

	"sealgram/internal/crypto"
	"sealgram/internal/domain"
)

// EncryptContent encrypts plaintext under a fresh random session key
// and returns both the key and the serialized envelope.
//
// The session key is returned only so the sealing engine can wrap it
// for each recipient; the caller must discard it once sealing is done.
// No plaintext size limit is enforced here, callers impose
// application-level limits upstream.
func EncryptContent(plaintext string) (domain.SessionKey, string, error) {
	var key domain.SessionKey
	raw, err := crypto.RandomBytes(domain.KeySize)
	if err != nil {
		return key, "", fmt.Errorf("session key: %w", err)
	}
	copy(key[:], raw)

	nonce, err := crypto.RandomBytes(crypto.GCMNonceSize)
	if err != nil {
		return key, "", fmt.Errorf("nonce: %w", err)
	}

	cipherBytes, tag, err := crypto.SymmetricEncrypt(key, nonce, []byte(plaintext))
	if err != nil {
		return key, "", fmt.Errorf("encrypt content: %w", err)
	}

	blob := make([]byte, 0, len(nonce)+len(tag)+len(cipherBytes))
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, cipherBytes...)
	return key, crypto.B64(blob), nil
}

// DecryptContent opens a serialized envelope with the given session
// key. Tag verification failure surfaces as
// domain.ErrContentAuthentication.
func DecryptContent(key domain.SessionKey, ciphertextB64 string) (string, error) {
	blob, err := crypto.FromB64(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("decode envelope: %w", err)
	}
	if len(blob) < crypto.GCMNonceSize+crypto.GCMTagSize {
		return "", fmt.Errorf("envelope too short: %d bytes", len(blob))
	}
	nonce := blob[:crypto.GCMNonceSize]
	tag := blob[crypto.GCMNonceSize : crypto.GCMNonceSize+crypto.GCMTagSize]
	cipherBytes := blob[crypto.GCMNonceSize+crypto.GCMTagSize:]

	plaintext, err := crypto.SymmetricDecrypt(key, nonce, tag, cipherBytes)
	if err != nil {
		return "", domain.ErrContentAuthentication
	}
	return string(plaintext), nil
}
