// Package crypto exposes the minimal primitives used by Sealgram.
//
// Contents
//
//   - Secure random byte generation (RandomBytes)
//   - AES-256-GCM with a detached tag (SymmetricEncrypt, SymmetricDecrypt)
//   - X25519 authenticated boxes for sealing small secrets to a peer
//     (BoxSeal, BoxOpen)
//   - X25519 key generation and Diffie-Hellman (GenerateKeyPair, DH)
//   - HKDF-SHA256 key derivation with domain separation (DeriveKey)
//   - Short public-key fingerprints for display/logging (Fingerprint)
//
// # Notes
//
// Key material moves through fixed-size array types defined in
// internal/domain to avoid accidental reallocations. Callers should
// treat returned secrets as sensitive and rely on memzero when
// practical to reduce lifetime in memory.
package crypto
