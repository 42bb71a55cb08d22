package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/curve25519"

	"sealgram/internal/domain"
)

var errInvalidPublicKey = errors.New("invalid X25519 public key")

// GenerateKeyPair returns a fresh X25519 agreement key pair.
// The private key is clamped per RFC 7748.
func GenerateKeyPair() (domain.KeyPair, error) {
	var kp domain.KeyPair
	if _, err := rand.Read(kp.Private[:]); err != nil {
		return domain.KeyPair{}, err
	}
	clamp(&kp.Private)

	priv := [32]byte(kp.Private)
	var pub [32]byte
	curve25519.ScalarBaseMult(&pub, &priv)
	kp.Public = domain.PublicKey(pub)
	return kp, nil
}

// DH computes the X25519 shared secret. The raw output should be fed
// through DeriveKey before use as a symmetric key.
func DH(priv domain.PrivateKey, pub domain.PublicKey) ([32]byte, error) {
	var out [32]byte
	if pub.IsZero() {
		return out, errInvalidPublicKey
	}
	secret, err := curve25519.X25519(priv.Slice(), pub.Slice())
	if err != nil {
		return out, err
	}
	copy(out[:], secret)
	return out, nil
}

// Fingerprint returns a short hex fingerprint of the public key for
// display and logging.
func Fingerprint(pub domain.PublicKey) string {
	sum := sha256.Sum256(pub.Slice())
	return hex.EncodeToString(sum[:10])
}

func clamp(k *domain.PrivateKey) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}
