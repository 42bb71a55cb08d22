// Package commands wires the sealgram CLI: identity management, the
// participant directory, multi-recipient encrypt/decrypt, and the
// device-linking handshake.
package commands
