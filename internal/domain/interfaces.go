package domain

// IdentityStore persists this device's long-term identity keys,
// encrypted under a passphrase.
type IdentityStore interface {
	SaveIdentity(passphrase string, id Identity) error
	LoadIdentity(passphrase string) (Identity, error)
}

// ParticipantDirectory supplies {id, publicKey} for every participant
// a message can be addressed to.
type ParticipantDirectory interface {
	Register(p Participant) error
	Lookup(id string) (Participant, bool, error)
	List() ([]Participant, error)
}

// MessageStore persists {ciphertext, encryptedKeys} keyed by message
// ID and serves per-recipient reads.
type MessageStore interface {
	// SaveMessage persists a message, minting an ID when none is set,
	// and returns the stored ID.
	SaveMessage(msg StoredMessage) (string, error)
	LoadMessage(id string) (StoredMessage, bool, error)

	// LoadForRecipient returns the ciphertext, the sealed session key
	// for the given recipient, and the sender ID. ok is false when the
	// message does not exist or carries no key for that recipient.
	LoadForRecipient(id, recipientID string) (ciphertext, sealedKey, senderID string, ok bool, err error)
}
