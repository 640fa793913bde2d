package driven

import (
	"context"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
)

// CredentialStore handles account lookup (PostgreSQL). It is owned by the
// user-management side of the platform; the auth core only reads from it.
type CredentialStore interface {
	// FindByEmail retrieves a credential with its role by normalized email.
	// domain.ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.Credential, error)

	// FindByID retrieves a credential with its role by user id.
	// domain.ErrNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Credential, error)

	// TouchLastLogin updates the last-login timestamp (best-effort)
	TouchLastLogin(ctx context.Context, id string) error
}
