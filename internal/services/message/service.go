package message

import (
	"context"
	"fmt"

	"sealgram/internal/domain"
	"sealgram/internal/protocol/seal"
)

// Service encrypts messages for participant sets and decrypts them for
// one recipient.
//
// High-level flow:
//   - Send: resolve every recipient through the directory, encrypt the
//     body once, seal the session key per recipient (sender included),
//     persist {ciphertext, encryptedKeys}.
//   - Read: fetch the ciphertext plus the caller's sealed key, resolve
//     the sender's public key, unseal and decrypt.
type Service struct {
	ids       domain.IdentityStore
	directory domain.ParticipantDirectory
	messages  domain.MessageStore
	sealer    *seal.Sealer
}

// New constructs a message Service over the given collaborators.
func New(
	ids domain.IdentityStore,
	directory domain.ParticipantDirectory,
	messages domain.MessageStore,
	sealer *seal.Sealer,
) *Service {
	return &Service{
		ids:       ids,
		directory: directory,
		messages:  messages,
		sealer:    sealer,
	}
}

// Send encrypts plaintext for the named recipients and persists the
// result. It returns the stored message ID.
//
// An unknown recipient ID is an error, not a silent skip: the
// directory is the authority on key material and a missing entry means
// the message cannot reach that participant.
func (s *Service) Send(ctx context.Context, passphrase string, recipientIDs []string, plaintext string) (string, error) {
	me, err := s.ids.LoadIdentity(passphrase)
	if err != nil {
		return "", fmt.Errorf("load identity: %w", err)
	}

	recipients := make([]domain.Participant, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		if id == "" {
			continue
		}
		p, ok, err := s.directory.Lookup(id)
		if err != nil {
			return "", fmt.Errorf("directory lookup %q: %w", id, err)
		}
		if !ok {
			return "", fmt.Errorf("participant %q: %w", id, domain.ErrMissingKeyMaterial)
		}
		recipients = append(recipients, p)
	}

	enc, err := s.sealer.EncryptForParticipants(ctx, plaintext, me, recipients)
	if err != nil {
		return "", err
	}

	id, err := s.messages.SaveMessage(domain.StoredMessage{
		SenderID:      me.ID,
		Ciphertext:    enc.Ciphertext,
		EncryptedKeys: enc.EncryptedKeys,
	})
	if err != nil {
		return "", fmt.Errorf("save message: %w", err)
	}
	return id, nil
}

// Read decrypts the stored message for the calling identity.
func (s *Service) Read(ctx context.Context, passphrase, messageID string) (string, error) {
	me, err := s.ids.LoadIdentity(passphrase)
	if err != nil {
		return "", fmt.Errorf("load identity: %w", err)
	}

	ciphertext, sealedKey, senderID, ok, err := s.messages.LoadForRecipient(messageID, me.ID)
	if err != nil {
		return "", fmt.Errorf("load message %q: %w", messageID, err)
	}
	if !ok {
		return "", fmt.Errorf("message %q has no key for %q", messageID, me.ID)
	}

	senderPub := me.Keys.Public
	if senderID != me.ID {
		sender, found, err := s.directory.Lookup(senderID)
		if err != nil {
			return "", fmt.Errorf("directory lookup %q: %w", senderID, err)
		}
		if !found {
			return "", fmt.Errorf("sender %q: %w", senderID, domain.ErrMissingKeyMaterial)
		}
		senderPub = sender.Public
	}

	return seal.DecryptForUser(ciphertext, sealedKey, me.Keys.Private, senderPub)
}
