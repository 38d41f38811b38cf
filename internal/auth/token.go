package auth

import "github.com/google/uuid"

// NewOpaqueToken generates the random token handed to a user for account
// confirmation or password reset. It carries no embedded meaning; validity
// comes only from matching the stored value.
func NewOpaqueToken() string {
	return uuid.New().String()
}
