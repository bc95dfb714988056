package domain

import "github.com/google/uuid"

// Identity is a resolved caller identity. It is owned by the external
// provider; this service only keeps the identifier plus best-effort hints.
type Identity struct {
	ID uuid.UUID
	// Handle is the provider contact handle (usually the email address).
	Handle string
	// DisplayNameHint is whatever name the session credential carried.
	// Authoritative resolution goes through the provider admin API.
	DisplayNameHint string
	// Administrator grants mutation rights over any record. The capability is
	// resolved by the identity adapter so the classification rule stays in one place.
	Administrator bool
}
