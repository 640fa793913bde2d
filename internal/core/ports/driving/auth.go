package driving

import (
	"context"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
)

// AuthService handles credential verification and the token lifecycle:
// issuance, validation, rotation and revocation.
type AuthService interface {
	// Login verifies credentials, issues an access+refresh pair and creates
	// a session keyed by the access token id
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error)

	// ValidateToken verifies an access token end to end: signature,
	// revocation list and live session. Touches the session on success.
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)

	// RefreshToken rotates a refresh token: revokes the presented one
	// atomically and issues a new pair. Exactly one of any set of
	// concurrent calls with the same token succeeds.
	RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.TokenPair, error)

	// Logout ends a session. With tokenID, deletes session
	// "{userID}:{tokenID}" and revokes tokenID; with tokenID empty, deletes
	// the legacy session key userID and leaves the revocation list alone.
	Logout(ctx context.Context, userID, tokenID string) error

	// HashPassword delegates to the password hasher
	HashPassword(password string) (string, error)

	// VerifyPassword delegates to the password hasher
	VerifyPassword(password, hash string) bool

	// GetUserByID returns the safe view of an account
	GetUserByID(ctx context.Context, id string) (*domain.UserView, error)

	// UserExistsByEmail reports whether an account exists for the
	// normalized email
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
}
