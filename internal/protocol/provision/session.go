package provision

import (
	"fmt"

	"sealgram/internal/crypto"
	"sealgram/internal/domain"
	"sealgram/internal/util/memzero"
)

// Session is one device-linking attempt: a fresh ephemeral key pair
// plus, once the peer's public key is known, the derived shared key.
// It lives only for the duration of the handshake and is discarded
// after the new device's permanent keys have been transported.
type Session struct {
	Ephemeral domain.KeyPair `json:"ephemeral"`
	Key       [KeySize]byte  `json:"-"`
	derived   bool
}

// NewSession generates a fresh ephemeral key pair for one linking
// attempt.
func NewSession() (*Session, error) {
	kp, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("ephemeral key pair: %w", err)
	}
	return &Session{Ephemeral: kp}, nil
}

// Derive fixes the session's shared key from the peer's ephemeral
// public key and the pre-shared secret.
func (s *Session) Derive(otherPubB64, presharedB64 string) error {
	key, err := DeriveSharedKey(s.Ephemeral.Private.B64(), otherPubB64, presharedB64)
	if err != nil {
		return err
	}
	s.Key = key
	s.derived = true
	return nil
}

// Seal encrypts payload under the session's derived key.
func (s *Session) Seal(payload any) (domain.SealedPayload, error) {
	if !s.derived {
		return domain.SealedPayload{}, fmt.Errorf("linking key not derived: %w", domain.ErrMissingKeyMaterial)
	}
	return Seal(s.Key, payload)
}

// Open decrypts a payload sealed by the peer under the same key.
func (s *Session) Open(p domain.SealedPayload, out any) error {
	if !s.derived {
		return fmt.Errorf("linking key not derived: %w", domain.ErrMissingKeyMaterial)
	}
	return OpenInto(s.Key, p.Nonce, p.Ciphertext, out)
}

// Discard wipes the session's secrets once the handshake is over.
func (s *Session) Discard() {
	memzero.Zero(s.Key[:])
	memzero.Zero(s.Ephemeral.Private[:])
	s.derived = false
}
