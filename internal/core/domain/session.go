package domain

import "time"

// Session is the server-side state behind a session cookie.
// Only the user's ID is kept; the user itself is looked up on every request.
type Session struct {
	ID             string    `json:"-"`
	UserID         string    `json:"userID,omitempty"`
	SignInAttempts int       `json:"signInAttempts,omitempty"`
	Flash          []string  `json:"flash,omitempty"`
	OAuthState     string    `json:"oauthState,omitempty"`
	OAuthVerifier  string    `json:"oauthVerifier,omitempty"`
	OAuthProvider  string    `json:"oauthProvider,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// IsAuthenticated reports whether a user has been serialized into the session.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != ""
}

// AddFlash queues messages to be shown on the next rendered page.
func (s *Session) AddFlash(messages ...string) {
	s.Flash = append(s.Flash, messages...)
}

// PopFlash returns the queued messages and clears them.
func (s *Session) PopFlash() []string {
	messages := s.Flash
	s.Flash = nil
	return messages
}

// RecordFailedSignIn counts one more consecutive failed signin.
func (s *Session) RecordFailedSignIn() {
	s.SignInAttempts++
}

// ResetSignIns clears the consecutive failure counter.
func (s *Session) ResetSignIns() {
	s.SignInAttempts = 0
}

// BeginOAuth remembers the CSRF state and PKCE verifier for a provider round trip.
func (s *Session) BeginOAuth(provider AuthProvider, state, verifier string) {
	s.OAuthProvider = string(provider)
	s.OAuthState = state
	s.OAuthVerifier = verifier
}

// EndOAuth returns and clears the pending OAuth round trip.
func (s *Session) EndOAuth() (provider AuthProvider, state, verifier string) {
	provider, state, verifier = AuthProvider(s.OAuthProvider), s.OAuthState, s.OAuthVerifier
	s.OAuthProvider, s.OAuthState, s.OAuthVerifier = "", "", ""
	return provider, state, verifier
}

// Clone returns a copy that shares no slices with s.
func (s *Session) Clone() *Session {
	c := *s
	if s.Flash != nil {
		c.Flash = append([]string(nil), s.Flash...)
	}
	return &c
}
