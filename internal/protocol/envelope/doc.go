// Package envelope implements the session cipher: one fresh symmetric
// key per message, one bulk encryption per message, serialized as
// base64(nonce || tag || cipherBytes).
package envelope
