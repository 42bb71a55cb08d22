package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"sealgram/internal/domain"
)

const (
	// GCMNonceSize is the AES-GCM nonce length in bytes.
	GCMNonceSize = 12
	// GCMTagSize is the AES-GCM authentication tag length in bytes.
	GCMTagSize = 16
)

// SymmetricEncrypt encrypts plaintext with AES-256-GCM and returns the
// cipher bytes and the detached authentication tag.
//
// The output is deterministic in (key, nonce, plaintext); callers must
// never reuse a (key, nonce) pair.
func SymmetricEncrypt(key domain.SessionKey, nonce, plaintext []byte) (cipherBytes, tag []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	if len(nonce) != GCMNonceSize {
		return nil, nil, fmt.Errorf("symmetric encrypt: nonce is %d bytes, want %d", len(nonce), GCMNonceSize)
	}
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	split := len(sealed) - GCMTagSize
	return sealed[:split], sealed[split:], nil
}

// SymmetricDecrypt verifies the tag and decrypts the cipher bytes.
// It returns domain.ErrAuthentication when verification fails and
// never returns partial plaintext.
func SymmetricDecrypt(key domain.SessionKey, nonce, tag, cipherBytes []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != GCMNonceSize {
		return nil, fmt.Errorf("symmetric decrypt: nonce is %d bytes, want %d", len(nonce), GCMNonceSize)
	}
	if len(tag) != GCMTagSize {
		return nil, fmt.Errorf("symmetric decrypt: tag is %d bytes, want %d", len(tag), GCMTagSize)
	}
	sealed := make([]byte, 0, len(cipherBytes)+len(tag))
	sealed = append(sealed, cipherBytes...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, domain.ErrAuthentication
	}
	return plaintext, nil
}

func newGCM(key domain.SessionKey) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key.Slice())
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return gcm, nil
}
