// File: internal/profile/ports.go
package profile

import "context"

// Account is the identity provider's view of an account, used as the
// dashboard fallback when no user document exists.
type Account struct {
	UID         string
	Email       string
	DisplayName string
}

// Identity is the credential side of the hosted service. Implementations map
// provider failures onto the closed code set in internal/common.
type Identity interface {
	// CreateAccount registers credentials with the provider and returns the
	// assigned uid.
	CreateAccount(ctx context.Context, email, password string) (string, error)

	// DeleteAccount removes the provider account for a uid.
	DeleteAccount(ctx context.Context, uid string) error

	// AccountInfo fetches the provider-level account record.
	AccountInfo(ctx context.Context, uid string) (*Account, error)
}

// Store is the document side of the hosted service. Absence of a record is
// reported as common.ErrNotFound, distinct from transport failures.
type Store interface {
	// Get fetches one user document by id.
	Get(ctx context.Context, id string) (*UserProfile, error)

	// Set writes a full document, the creation path.
	Set(ctx context.Context, id string, p *UserProfile) error

	// Update merges the given fields into an existing document, the edit
	// path. Fails with common.ErrNotFound when the document is absent.
	Update(ctx context.Context, id string, fields map[string]interface{}) error

	// List returns all user documents ordered by creation time.
	List(ctx context.Context) ([]*UserProfile, error)

	// Delete removes one user document.
	Delete(ctx context.Context, id string) error
}
