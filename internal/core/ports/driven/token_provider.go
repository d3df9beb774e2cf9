package driven

import "context"

// TokenProvider resolves the token sent with search requests.
type TokenProvider interface {
	// GetToken returns the token to use right now. An empty token with a nil
	// error means the request goes out without credentials.
	GetToken(ctx context.Context) (string, error)

	// IsAuthenticated reports whether GetToken would currently return a token.
	IsAuthenticated() bool
}
