// Package domain holds the shared types, error taxonomy and
// collaborator interfaces of the Sealgram core. It has no
// dependencies on the rest of the module so every layer can import it.
package domain
