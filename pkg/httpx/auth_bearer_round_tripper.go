package httpx

import (
	"context"
	"fmt"
	"net/http"
)

// TokenSource supplies bearer tokens for outbound calls and can discard a
// token the upstream rejected.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// AuthBearerRoundTripper sets the Authorization header from a TokenSource
// and retries once with a fresh token after a 401.
type AuthBearerRoundTripper struct {
	next   http.RoundTripper
	tokens TokenSource
}

// NewAuthBearerRoundTripper decorates next with bearer authentication.
// A nil next uses http.DefaultTransport.
func NewAuthBearerRoundTripper(next http.RoundTripper, tokens TokenSource) AuthBearerRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return AuthBearerRoundTripper{next: next, tokens: tokens}
}

// RoundTrip implements http.RoundTripper.
func (rt AuthBearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := rt.tokens.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("token source: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		rt.tokens.Invalidate()

		token, err = rt.tokens.Token(req.Context())
		if err != nil {
			return nil, fmt.Errorf("token source after 401: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		return rt.next.RoundTrip(req)
	}

	return resp, nil
}
