package crypto

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey derives length bytes from ikm using HKDF-SHA256.
// salt may be nil (zero salt). info is a fixed domain-separation label
// per use case so keys derived for different purposes are never
// interchangeable even from the same input material.
func DeriveKey(ikm, salt, info []byte, length int) ([]byte, error) {
	hk := hkdf.New(sha256.New, ikm, salt, info)
	key := make([]byte, length)
	if _, err := io.ReadFull(hk, key); err != nil {
		return nil, err
	}
	return key, nil
}
