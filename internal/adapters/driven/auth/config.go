package auth

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// minSecretLen is the minimum HMAC secret size. HS256 with a short secret is
// brute-forceable, so construction fails below this.
const minSecretLen = 32

// Config is the immutable signing configuration, built once at process start
// and passed into the codec and hasher constructors. No package-level state.
type Config struct {
	// Secret is the HMAC signing key, at least 32 bytes
	Secret []byte

	// Issuer is stamped into and required of every token
	Issuer string

	// Audience is stamped into and required of every token
	Audience string

	// AccessTTL is the access token lifetime (minutes-scale)
	AccessTTL time.Duration

	// RefreshTTL is the refresh token lifetime (days-scale)
	RefreshTTL time.Duration

	// BcryptCost is the bcrypt work factor; defaults to 12
	BcryptCost int
}

// DefaultConfig returns a Config with production defaults for the given
// secret: 15 minute access tokens, 7 day refresh tokens, cost 12.
func DefaultConfig(secret []byte) Config {
	return Config{
		Secret:     secret,
		Issuer:     "plant-core",
		Audience:   "plant-core-api",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		BcryptCost: 12,
	}
}

// Validate checks the configuration is usable
func (c Config) Validate() error {
	if len(c.Secret) < minSecretLen {
		return errors.New("auth: signing secret must be at least 32 bytes")
	}
	if c.Issuer == "" || c.Audience == "" {
		return errors.New("auth: issuer and audience are required")
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return errors.New("auth: token TTLs must be positive")
	}
	if c.BcryptCost != 0 && (c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost) {
		return errors.New("auth: bcrypt cost out of range")
	}
	return nil
}
