package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fabrica-labs/plant-core/internal/core/domain"
	"github.com/fabrica-labs/plant-core/internal/core/ports/driven"
)

// Ensure Codec implements TokenCodec
var _ driven.TokenCodec = (*Codec)(nil)

// jwtClaims wraps domain.TokenClaims for JWT compatibility. Subject carries
// the user id and ID the jti.
type jwtClaims struct {
	Email       string               `json:"email,omitempty"`
	RoleID      string               `json:"role_id,omitempty"`
	Permissions domain.PermissionSet `json:"permissions,omitempty"`
	TokenType   domain.TokenType     `json:"token_type"`
	jwt.RegisteredClaims
}

// Codec signs and verifies claim tokens using HS256. The signing method is
// allow-listed on parse, so a token presenting "none" or any other algorithm
// fails signature verification regardless of its payload.
type Codec struct {
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewCodec creates a token codec from a validated configuration
func NewCodec(cfg Config) (*Codec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Codec{
		secret:     cfg.Secret,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}, nil
}

// IssueAccess signs an access token embedding the credential's identity and
// a snapshot of its role permissions. The snapshot may lag a live role edit
// by up to the access TTL.
func (c *Codec) IssueAccess(cred *domain.Credential) (string, *domain.TokenClaims, error) {
	return c.issue(cred, domain.TokenTypeAccess, c.accessTTL)
}

// IssueRefresh signs a refresh token carrying only the subject
func (c *Codec) IssueRefresh(cred *domain.Credential) (string, *domain.TokenClaims, error) {
	return c.issue(cred, domain.TokenTypeRefresh, c.refreshTTL)
}

func (c *Codec) issue(cred *domain.Credential, typ domain.TokenType, ttl time.Duration) (string, *domain.TokenClaims, error) {
	now := c.now()
	jc := jwtClaims{
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.ID,
			ID:        uuid.NewString(),
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if typ == domain.TokenTypeAccess {
		jc.Email = cred.Email
		jc.RoleID = cred.Role.ID
		jc.Permissions = cred.Role.Permissions
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jc).SignedString(c.secret)
	if err != nil {
		return "", nil, err
	}
	return token, jc.toDomain(), nil
}

// Verify decodes and validates a token. Outcomes are distinct per failure
// mode: domain.ErrTokenExpired for a valid-but-old token,
// domain.ErrSignatureInvalid for a bad signature or disallowed algorithm,
// domain.ErrTokenMalformed for anything that is not a token, and
// domain.ErrTokenInvalid for claim mismatches (issuer, audience).
func (c *Codec) Verify(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{},
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrSignatureInvalid
		default:
			return nil, domain.ErrTokenInvalid
		}
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims.toDomain(), nil
}

// toDomain converts JWT claims back to the transport-agnostic form
func (jc *jwtClaims) toDomain() *domain.TokenClaims {
	claims := &domain.TokenClaims{
		UserID:      jc.Subject,
		Email:       jc.Email,
		RoleID:      jc.RoleID,
		Permissions: jc.Permissions,
		TokenType:   jc.TokenType,
		TokenID:     jc.ID,
		Issuer:      jc.Issuer,
	}
	if len(jc.Audience) > 0 {
		claims.Audience = jc.Audience[0]
	}
	if jc.IssuedAt != nil {
		claims.IssuedAt = jc.IssuedAt.Unix()
	}
	if jc.ExpiresAt != nil {
		claims.ExpiresAt = jc.ExpiresAt.Unix()
	}
	return claims
}
