package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
	"github.com/fabrica-labs/plant-core/internal/core/ports/driven"
	"github.com/fabrica-labs/plant-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// bestEffortTimeout bounds the detached writes (session touch, last-login)
// so they cannot pile up behind a slow store.
const bestEffortTimeout = 5 * time.Second

// Config holds auth service tuning. All fields are optional.
type Config struct {
	// Logger for best-effort failures; defaults to slog.Default()
	Logger *slog.Logger

	// RevocationFallbackTTL is used when revoking a token whose true
	// remaining lifetime is unknown (logout by token id). It is a fixed
	// ceiling: over-retaining an entry is preferred to under-revoking.
	// Defaults to 24h.
	RevocationFallbackTTL time.Duration
}

// authService implements the AuthService interface. It holds no mutable
// state of its own; everything lives in the injected stores, so every call
// is an independent operation.
type authService struct {
	credentials driven.CredentialStore
	sessions    driven.SessionStore
	revocations driven.RevocationList
	hasher      driven.PasswordHasher
	codec       driven.TokenCodec

	logger      *slog.Logger
	fallbackTTL time.Duration
	now         func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	credentials driven.CredentialStore,
	sessions driven.SessionStore,
	revocations driven.RevocationList,
	hasher driven.PasswordHasher,
	codec driven.TokenCodec,
	cfg Config,
) driving.AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	fallbackTTL := cfg.RevocationFallbackTTL
	if fallbackTTL <= 0 {
		fallbackTTL = 24 * time.Hour
	}
	return &authService{
		credentials: credentials,
		sessions:    sessions,
		revocations: revocations,
		hasher:      hasher,
		codec:       codec,
		logger:      logger,
		fallbackTTL: fallbackTTL,
		now:         time.Now,
	}
}

// Login verifies credentials and issues a fresh token pair plus a session.
// Unknown email, wrong password and deactivated account all return
// domain.ErrInvalidCredentials so the response does not reveal which check
// failed.
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email := domain.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	cred, err := s.credentials.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !cred.Active {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(req.Password, cred.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	pair, accessClaims, err := s.issuePair(cred)
	if err != nil {
		return nil, err
	}

	if err := s.createSession(ctx, accessClaims, req.ClientIP, req.UserAgent); err != nil {
		return nil, err
	}

	// Last-login is informational; its failure must not fail the login.
	s.touchLastLogin(ctx, cred.ID)

	return &domain.LoginResult{
		Tokens: *pair,
		User:   cred.ToView(),
	}, nil
}

// ValidateToken checks an access token against signature, revocation list
// and live session, then touches the session.
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.codec.Verify(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	revoked, err := s.revocations.Exists(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	if claims.TokenType != domain.TokenTypeAccess {
		return nil, domain.ErrInvalidTokenType
	}

	key := domain.SessionKey(claims.UserID, claims.TokenID)
	if _, err := s.sessions.Get(ctx, key); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	s.touchSession(ctx, key)

	return claims, nil
}

// RefreshToken rotates a refresh token. The presented token is revoked with
// an atomic set-if-absent before the successor pair is issued; of any set of
// concurrent calls with the same token, exactly one observes the win and
// proceeds, the rest fail with domain.ErrTokenRevoked.
func (s *authService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.TokenPair, error) {
	if req.RefreshToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.codec.Verify(req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if claims.TokenType != domain.TokenTypeRefresh {
		return nil, domain.ErrInvalidTokenType
	}

	revoked, err := s.revocations.Exists(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	cred, err := s.credentials.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserInactive
		}
		return nil, err
	}
	if !cred.Active {
		return nil, domain.ErrUserInactive
	}

	// Consume the presented token. The entry expires with the token itself,
	// so the revocation set stays bounded.
	ttl := claims.TTL(s.now())
	if ttl <= 0 {
		ttl = s.fallbackTTL
	}
	won, err := s.revocations.SetIfAbsent(ctx, claims.TokenID, ttl)
	if err != nil {
		return nil, err
	}
	if !won {
		// A concurrent refresh already consumed this token.
		return nil, domain.ErrTokenRevoked
	}

	pair, accessClaims, err := s.issuePair(cred)
	if err != nil {
		return nil, err
	}

	if err := s.createSession(ctx, accessClaims, req.ClientIP, req.UserAgent); err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout ends a session. With a token id the session "{userID}:{tokenID}"
// is deleted and the token id revoked; the revocation write must succeed,
// a dropped revocation is not a best-effort failure. Without a token id only
// the legacy session key (the bare user id) is deleted.
func (s *authService) Logout(ctx context.Context, userID, tokenID string) error {
	if userID == "" {
		return domain.ErrInvalidInput
	}

	if tokenID == "" {
		return s.sessions.Delete(ctx, userID)
	}

	if err := s.sessions.Delete(ctx, domain.SessionKey(userID, tokenID)); err != nil {
		return err
	}

	// The token's true remaining lifetime is not derivable here, so the
	// entry gets the fixed fallback ceiling.
	if _, err := s.revocations.SetIfAbsent(ctx, tokenID, s.fallbackTTL); err != nil {
		return err
	}
	return nil
}

// HashPassword delegates to the password hasher
func (s *authService) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// VerifyPassword delegates to the password hasher
func (s *authService) VerifyPassword(password, hash string) bool {
	return s.hasher.Verify(password, hash)
}

// GetUserByID returns the safe view of an account
func (s *authService) GetUserByID(ctx context.Context, id string) (*domain.UserView, error) {
	cred, err := s.credentials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cred.ToView(), nil
}

// UserExistsByEmail reports whether an account exists for the email
func (s *authService) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.credentials.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// issuePair mints a fresh access+refresh pair with distinct token ids.
func (s *authService) issuePair(cred *domain.Credential) (*domain.TokenPair, *domain.TokenClaims, error) {
	accessToken, accessClaims, err := s.codec.IssueAccess(cred)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, refreshClaims, err := s.codec.IssueRefresh(cred)
	if err != nil {
		return nil, nil, err
	}
	return &domain.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessClaims.Expiry(),
		RefreshExpiresAt: refreshClaims.Expiry(),
	}, accessClaims, nil
}

// createSession stores a session keyed by the access token id, expiring with
// the access token.
func (s *authService) createSession(ctx context.Context, accessClaims *domain.TokenClaims, clientIP, userAgent string) error {
	now := s.now()
	session := &domain.Session{
		UserID:         accessClaims.UserID,
		LoginAt:        now,
		ClientIP:       clientIP,
		UserAgent:      userAgent,
		LastActivityAt: now,
	}
	key := domain.SessionKey(accessClaims.UserID, accessClaims.TokenID)
	return s.sessions.Set(ctx, key, session, accessClaims.TTL(now))
}

// touchLastLogin updates the last-login timestamp without blocking the call.
func (s *authService) touchLastLogin(ctx context.Context, userID string) {
	detached := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(detached, bestEffortTimeout)
		defer cancel()
		if err := s.credentials.TouchLastLogin(ctx, userID); err != nil {
			s.logger.Warn("last-login update failed", "user_id", userID, "error", err)
		}
	}()
}

// touchSession records activity on a session, fire-and-forget. The session
// may have expired between Get and Touch; that is not worth logging.
func (s *authService) touchSession(ctx context.Context, key string) {
	detached := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(detached, bestEffortTimeout)
		defer cancel()
		if err := s.sessions.Touch(ctx, key); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("session touch failed", "key", key, "error", err)
		}
	}()
}
