package seal

import (
	"context"
	"fmt"

	"sealgram/internal/crypto"
	"sealgram/internal/domain"
	"sealgram/internal/protocol/envelope"
	"sealgram/internal/util/memzero"
	"sealgram/internal/worker"
)

// SealSessionKey wraps sessionKey to one recipient. The result is
// base64 of boxNonce(24) || box(sessionKey); sealing with the sender's
// private key also authenticates the sender to the recipient.
func SealSessionKey(sessionKey domain.SessionKey, recipientPub domain.PublicKey, senderPriv domain.PrivateKey) (string, error) {
	raw, err := crypto.RandomBytes(crypto.BoxNonceSize)
	if err != nil {
		return "", fmt.Errorf("seal nonce: %w", err)
	}
	var nonce [crypto.BoxNonceSize]byte
	copy(nonce[:], raw)

	boxed := crypto.BoxSeal(sessionKey.Slice(), &nonce, recipientPub, senderPriv)

	blob := make([]byte, 0, len(nonce)+len(boxed))
	blob = append(blob, nonce[:]...)
	blob = append(blob, boxed...)
	return crypto.B64(blob), nil
}

// OpenSessionKey reverses SealSessionKey. A failed box open surfaces
// as domain.ErrSessionKeyUnseal; the caller must not fall through to
// symmetric decryption in that case.
func OpenSessionKey(sealedKeyB64 string, senderPub domain.PublicKey, recipientPriv domain.PrivateKey) (domain.SessionKey, error) {
	var key domain.SessionKey
	blob, err := crypto.FromB64(sealedKeyB64)
	if err != nil {
		return key, fmt.Errorf("decode sealed key: %w", err)
	}
	if len(blob) < crypto.BoxNonceSize+crypto.BoxOverhead {
		return key, fmt.Errorf("sealed key too short: %d bytes", len(blob))
	}
	var nonce [crypto.BoxNonceSize]byte
	copy(nonce[:], blob[:crypto.BoxNonceSize])

	opened, ok := crypto.BoxOpen(blob[crypto.BoxNonceSize:], &nonce, senderPub, recipientPriv)
	if !ok {
		return key, domain.ErrSessionKeyUnseal
	}
	if len(opened) != domain.KeySize {
		return key, fmt.Errorf("%w: unexpected session key length %d", domain.ErrSessionKeyUnseal, len(opened))
	}
	copy(key[:], opened)
	memzero.Zero(opened)
	return key, nil
}

// Handler is the worker-pool task body. It takes only serializable
// inputs and is stateless, so tasks for different recipients of the
// same message can run on any worker in any order.
func Handler(req worker.SealRequest) (worker.SealResult, error) {
	sessionKey, err := decodeKey32(req.SessionKeyB64)
	if err != nil {
		return worker.SealResult{}, fmt.Errorf("task session key: %w", err)
	}
	recipientPub, err := decodeKey32(req.RecipientPublicB64)
	if err != nil {
		return worker.SealResult{}, fmt.Errorf("task recipient key: %w", err)
	}
	senderPriv, err := decodeKey32(req.SenderPrivateB64)
	if err != nil {
		return worker.SealResult{}, fmt.Errorf("task sender key: %w", err)
	}

	sealed, err := SealSessionKey(domain.SessionKey(sessionKey), domain.PublicKey(recipientPub), domain.PrivateKey(senderPriv))
	if err != nil {
		return worker.SealResult{}, err
	}
	return worker.SealResult{SealedKeyB64: sealed}, nil
}

// EncryptForParticipants encrypts plaintext once and seals the session
// key for every unique recipient plus the sender itself.
//
// Recipient-set rules, applied once up front: deduplicate by ID, drop
// entries with an empty ID, fail on a recipient with no public key,
// then add the sender if not already present. Zero valid recipients
// still yields a ciphertext and a sender-only key map.
func (s *Sealer) EncryptForParticipants(
	ctx context.Context,
	plaintext string,
	sender domain.Identity,
	recipients []domain.Participant,
) (domain.EncryptedMessage, error) {
	if sender.ID == "" || sender.Keys.Public.IsZero() {
		return domain.EncryptedMessage{}, fmt.Errorf("sender: %w", domain.ErrMissingKeyMaterial)
	}

	targets, err := recipientSet(sender, recipients)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}

	// The message body is encrypted exactly once regardless of the
	// recipient count.
	sessionKey, ciphertext, err := envelope.EncryptContent(plaintext)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	defer memzero.Zero(sessionKey[:])

	keys, err := s.sealAll(ctx, sessionKey, sender, targets)
	if err != nil {
		return domain.EncryptedMessage{}, err
	}
	return domain.EncryptedMessage{Ciphertext: ciphertext, EncryptedKeys: keys}, nil
}

// DecryptForUser reconstructs the session key from the recipient's
// sealed key and decrypts the message body.
func DecryptForUser(ciphertextB64, sealedKeyB64 string, recipientPriv domain.PrivateKey, senderPub domain.PublicKey) (string, error) {
	sessionKey, err := OpenSessionKey(sealedKeyB64, senderPub, recipientPriv)
	if err != nil {
		return "", err
	}
	defer memzero.Zero(sessionKey[:])
	return envelope.DecryptContent(sessionKey, ciphertextB64)
}

// recipientSet applies the deduplication and self-seal rules and
// returns the unique participants to seal for, sender included.
func recipientSet(sender domain.Identity, recipients []domain.Participant) ([]domain.Participant, error) {
	seen := make(map[string]struct{}, len(recipients)+1)
	out := make([]domain.Participant, 0, len(recipients)+1)
	for _, r := range recipients {
		if r.ID == "" {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		if r.Public.IsZero() {
			return nil, fmt.Errorf("recipient %q: %w", r.ID, domain.ErrMissingKeyMaterial)
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	if _, ok := seen[sender.ID]; !ok {
		out = append(out, domain.Participant{ID: sender.ID, Public: sender.Keys.Public})
	}
	return out, nil
}

func decodeKey32(b64 string) ([domain.KeySize]byte, error) {
	var key [domain.KeySize]byte
	raw, err := crypto.FromB64(b64)
	if err != nil {
		return key, err
	}
	if len(raw) != domain.KeySize {
		return key, fmt.Errorf("key is %d bytes, want %d", len(raw), domain.KeySize)
	}
	copy(key[:], raw)
	return key, nil
}
