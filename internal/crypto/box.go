package crypto

import (
	"golang.org/x/crypto/nacl/box"

	"sealgram/internal/domain"
)

const (
	// BoxNonceSize is the NaCl box nonce length in bytes.
	BoxNonceSize = 24
	// BoxOverhead is the fixed authentication overhead appended to a
	// boxed message.
	BoxOverhead = box.Overhead
)

// BoxSeal encrypts and authenticates message to recipientPub using
// senderPriv. The output is len(message)+BoxOverhead bytes and also
// authenticates the sender to the recipient.
func BoxSeal(message []byte, nonce *[BoxNonceSize]byte, recipientPub domain.PublicKey, senderPriv domain.PrivateKey) []byte {
	pub := [32]byte(recipientPub)
	priv := [32]byte(senderPriv)
	return box.Seal(nil, message, nonce, &pub, &priv)
}

// BoxOpen authenticates and decrypts a sealed box. It reports failure
// through ok rather than an error; callers must translate ok=false
// into a hard failure, never ignore it.
func BoxOpen(sealed []byte, nonce *[BoxNonceSize]byte, senderPub domain.PublicKey, recipientPriv domain.PrivateKey) (msg []byte, ok bool) {
	pub := [32]byte(senderPub)
	priv := [32]byte(recipientPriv)
	return box.Open(nil, sealed, nonce, &pub, &priv)
}
