// Package service defines the domain's collaborator ports: hashing, token
// issuance, external identity, event publishing, push delivery, seed loading.
package service

// PasswordHasher hashes and verifies credentials for locally registered
// accounts, hiding the concrete algorithm from the auth use case.
type PasswordHasher interface {
	// Hash produces a salted hash of the plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the stored hash.
	Check(password, hash string) bool
}
