// Package seal implements the key sealing engine: wrapping a
// message's session key to each recipient's public key with the
// sender's private key, the recipient-set rules (deduplication and
// implicit self-seal), the parallel dispatch policy with inline
// fallback, and the matching unseal/decrypt path.
package seal
