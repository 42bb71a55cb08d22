// Package store provides the file-backed persistence used by the CLI:
// a passphrase-protected identity keystore, the participant directory,
// the message store, and the pending link-session file. All stores
// keep JSON under a single home directory.
package store
