package domain

import "encoding/base64"

// KeySize is the length of X25519 public and private keys, session
// keys, and provisioning shared keys.
const KeySize = 32

// PublicKey is an X25519 public key. It has no confidentiality
// requirement and may be shared freely.
type PublicKey [KeySize]byte

// PrivateKey is an X25519 private key, owned exclusively by one device.
type PrivateKey [KeySize]byte

// SessionKey is an ephemeral symmetric key encrypting one message's
// content. It exists only in memory for one encrypt/seal cycle and is
// persisted only in sealed form.
type SessionKey [KeySize]byte

func (k PublicKey) Slice() []byte  { return k[:] }
func (k PrivateKey) Slice() []byte { return k[:] }
func (k SessionKey) Slice() []byte { return k[:] }

// IsZero reports whether the key is the all-zero value, which is never
// a valid key and marks missing key material.
func (k PublicKey) IsZero() bool { return k == PublicKey{} }

// B64 returns the standard-base64 form used for storage and transport.
func (k PublicKey) B64() string  { return base64.StdEncoding.EncodeToString(k[:]) }
func (k PrivateKey) B64() string { return base64.StdEncoding.EncodeToString(k[:]) }
func (k SessionKey) B64() string { return base64.StdEncoding.EncodeToString(k[:]) }

// KeyPair is a long-term X25519 agreement key pair. Immutable after
// creation; rotation creates a new pair.
type KeyPair struct {
	Public  PublicKey
	Private PrivateKey
}

// Identity is a device's account binding: its participant ID plus its
// long-term key pair.
type Identity struct {
	ID   string  `json:"id"`
	Keys KeyPair `json:"keys"`
}

// Participant is a directory entry: who can receive messages and with
// which public key.
type Participant struct {
	ID     string    `json:"id"`
	Public PublicKey `json:"public_key"`
}

// EncryptedMessage is the serialized output of encrypting one message
// for a set of participants.
//
// Ciphertext is base64 of nonce(12) || tag(16) || AES-256-GCM bytes.
// EncryptedKeys maps each unique recipient ID (always including the
// sender) to base64 of boxNonce(24) || box(sessionKey).
type EncryptedMessage struct {
	Ciphertext    string            `json:"ciphertext"`
	EncryptedKeys map[string]string `json:"encrypted_keys"`
}

// StoredMessage is what the persistence layer keeps per message.
type StoredMessage struct {
	ID            string            `json:"id"`
	SenderID      string            `json:"sender_id"`
	Ciphertext    string            `json:"ciphertext"`
	EncryptedKeys map[string]string `json:"encrypted_keys"`
}

// SealedPayload is a generic authenticated-encrypted JSON blob used
// during device provisioning. Nonce is base64 of 24 bytes; Ciphertext
// is base64 of the JSON bytes plus MAC overhead.
type SealedPayload struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}
