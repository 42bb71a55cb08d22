// Package provision implements the device-linking handshake: deriving
// a one-time shared key from an ephemeral X25519 agreement plus a
// pre-shared secret, and generic seal/open of JSON payloads under that
// key for transporting key material to a new device.
package provision
