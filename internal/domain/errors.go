package domain

import "errors"

var (
	// ErrMissingKeyMaterial is returned when a required public or
	// private key is absent. The operation aborts before any
	// encryption work is done.
	ErrMissingKeyMaterial = errors.New("missing key material")

	// ErrAuthentication is returned when symmetric tag verification
	// fails at the primitive layer. Never retried.
	ErrAuthentication = errors.New("authentication failed")

	// ErrContentAuthentication is returned when a message body fails
	// tag verification during decryption. Treated as tampering or
	// corruption, never retried.
	ErrContentAuthentication = errors.New("content authentication failed")

	// ErrSessionKeyUnseal is returned when the asymmetric box holding
	// a session key cannot be opened, typically a wrong key pair or a
	// corrupted sealed key.
	ErrSessionKeyUnseal = errors.New("unable to decrypt session key")

	// ErrProvisioningDecryption is returned when a provisioning
	// payload fails to open. Fatal to that linking attempt only.
	ErrProvisioningDecryption = errors.New("decryption failed")
)
