package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
	"github.com/fabrica-labs/plant-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore implements driven.CredentialStore using PostgreSQL.
// The auth core only reads accounts; user CRUD is owned by the user
// management service.
type CredentialStore struct {
	db *DB
}

// NewCredentialStore creates a new CredentialStore
func NewCredentialStore(db *DB) *CredentialStore {
	return &CredentialStore{db: db}
}

const credentialColumns = `
	u.id, u.email, u.password_hash, u.name, u.active,
	u.created_at, u.updated_at, u.last_login_at,
	r.id, r.name, r.permissions
`

// FindByEmail retrieves a credential with its role by normalized email
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	query := `
		SELECT ` + credentialColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1
	`
	return s.scanCredential(s.db.QueryRowContext(ctx, query, email))
}

// FindByID retrieves a credential with its role by user id
func (s *CredentialStore) FindByID(ctx context.Context, id string) (*domain.Credential, error) {
	query := `
		SELECT ` + credentialColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`
	return s.scanCredential(s.db.QueryRowContext(ctx, query, id))
}

// TouchLastLogin updates the last-login timestamp
func (s *CredentialStore) TouchLastLogin(ctx context.Context, id string) error {
	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return domain.Infrastructure("last-login update", err)
	}
	return nil
}

func (s *CredentialStore) scanCredential(row *sql.Row) (*domain.Credential, error) {
	var cred domain.Credential
	var lastLoginAt sql.NullTime
	var permissions []byte

	err := row.Scan(
		&cred.ID,
		&cred.Email,
		&cred.PasswordHash,
		&cred.Name,
		&cred.Active,
		&cred.CreatedAt,
		&cred.UpdatedAt,
		&lastLoginAt,
		&cred.Role.ID,
		&cred.Role.Name,
		&permissions,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, domain.Infrastructure("credential lookup", err)
	}

	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		cred.LastLoginAt = &t
	}

	if len(permissions) > 0 {
		if err := json.Unmarshal(permissions, &cred.Role.Permissions); err != nil {
			return nil, domain.Infrastructure("permissions decode", err)
		}
	}

	return &cred, nil
}
