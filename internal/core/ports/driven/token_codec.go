package driven

import "github.com/fabrica-labs/plant-core/internal/core/domain"

// TokenCodec constructs, signs and verifies claim tokens. Implementations
// sign with a single allow-listed algorithm and a process-wide secret loaded
// once at startup.
type TokenCodec interface {
	// IssueAccess signs a fresh access token for the credential, embedding a
	// permission snapshot and a new random token id. Returns the encoded
	// token and its claims.
	IssueAccess(cred *domain.Credential) (string, *domain.TokenClaims, error)

	// IssueRefresh signs a fresh refresh token carrying only the subject.
	IssueRefresh(cred *domain.Credential) (string, *domain.TokenClaims, error)

	// Verify decodes a token and checks signature, algorithm, issuer and
	// audience. Failure modes are distinct: domain.ErrTokenExpired,
	// domain.ErrSignatureInvalid and domain.ErrTokenMalformed.
	Verify(token string) (*domain.TokenClaims, error)
}
