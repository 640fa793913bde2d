package domain

import "time"

// TokenType distinguishes the two kinds of issued tokens
type TokenType string

const (
	TokenTypeAccess  TokenType = "ACCESS"
	TokenTypeRefresh TokenType = "REFRESH"
)

// TokenClaims is the decoded payload of a signed token. Access tokens carry
// the full identity plus a permission snapshot; refresh tokens carry only the
// subject. The snapshot may lag the live role definition by up to the access
// TTL, which is the accepted staleness window.
type TokenClaims struct {
	UserID      string        `json:"user_id"`
	Email       string        `json:"email,omitempty"`
	RoleID      string        `json:"role_id,omitempty"`
	Permissions PermissionSet `json:"permissions,omitempty"`
	TokenType   TokenType     `json:"token_type"`
	TokenID     string        `json:"jti"`
	IssuedAt    int64         `json:"iat"`
	ExpiresAt   int64         `json:"exp"`
	Issuer      string        `json:"iss,omitempty"`
	Audience    string        `json:"aud,omitempty"`
}

// Expiry returns the expiry as a time.Time
func (c *TokenClaims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

// TTL returns the remaining lifetime of the token at now.
func (c *TokenClaims) TTL(now time.Time) time.Duration {
	return c.Expiry().Sub(now)
}

// Session is the server-side record proving an access token is still
// "logged in", independent of the token's own cryptographic validity.
type Session struct {
	UserID         string    `json:"user_id"`
	LoginAt        time.Time `json:"login_at"`
	ClientIP       string    `json:"client_ip,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	LastActivityAt time.Time `json:"last_activity_at"`
}

// SessionKey builds the store key for a session: "{userId}:{accessJti}".
func SessionKey(userID, tokenID string) string {
	return userID + ":" + tokenID
}

// TokenPair is one access token plus its paired refresh token
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	ClientIP  string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResult is returned after successful authentication
type LoginResult struct {
	Tokens TokenPair `json:"tokens"`
	User   *UserView `json:"user"`
}

// RefreshRequest represents a token rotation attempt
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
	ClientIP     string `json:"-"`
	UserAgent    string `json:"-"`
}
