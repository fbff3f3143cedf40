package ports

import "context"

// IdentityPort resolves and updates player profiles held by the host.
type IdentityPort interface {
	// DisplayName returns the name shown for userID at the table.
	DisplayName(ctx context.Context, userID string) (string, error)

	// UpdateProfile updates account profile fields for the given user.
	// userID identifies the account to update; username/displayName are applied as provided.
	// Returns an error if the profile update fails.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
