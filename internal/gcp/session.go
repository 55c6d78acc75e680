package gcpinternal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// CommonScopes defines the OAuth scopes requested from Application Default
// Credentials. Policy search and service usage only need read access.
var CommonScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/cloud-platform.read-only",
}

// SafeSession provides thread-safe GCP authentication with token caching.
// All API clients in this codebase are constructed from one session so a
// single credential refresh serves every service.
type SafeSession struct {
	mu           sync.Mutex
	tokenSource  oauth2.TokenSource
	currentToken *oauth2.Token
}

// NewSafeSession initializes a session from Application Default Credentials.
func NewSafeSession(ctx context.Context) (*SafeSession, error) {
	ts, err := google.DefaultTokenSource(ctx, CommonScopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to create token source; run 'gcloud auth application-default login': %w", err)
	}

	ss := &SafeSession{tokenSource: ts}
	if _, err := ss.Token(); err != nil {
		return nil, fmt.Errorf("GCP session invalid: %w", err)
	}
	return ss, nil
}

// Token returns a valid token, refreshing through the underlying source when
// the cached one is expired or about to expire.
func (s *SafeSession) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentToken != nil && s.currentToken.Valid() &&
		time.Until(s.currentToken.Expiry) > 5*time.Minute {
		return s.currentToken, nil
	}

	token, err := s.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	s.currentToken = token
	return token, nil
}

// GetClientOption returns the option used to construct API clients from this
// session.
func (s *SafeSession) GetClientOption() option.ClientOption {
	return option.WithTokenSource(sessionTokenSource{s})
}

type sessionTokenSource struct {
	session *SafeSession
}

func (t sessionTokenSource) Token() (*oauth2.Token, error) {
	return t.session.Token()
}
