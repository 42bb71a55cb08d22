// Package message orchestrates encryption for a participant set and
// per-recipient reads over the directory and persistence collaborators.
package message
