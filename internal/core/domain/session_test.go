package domain_test

import (
	"testing"

	"github.com/SscSPs/gallery_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSession_Flash(t *testing.T) {
	s := &domain.Session{}
	s.AddFlash("one")
	s.AddFlash("two", "three")

	assert.Equal(t, []string{"one", "two", "three"}, s.PopFlash())
	assert.Empty(t, s.PopFlash(), "messages are shown once")
}

func TestSession_SignInAttempts(t *testing.T) {
	s := &domain.Session{}
	s.RecordFailedSignIn()
	s.RecordFailedSignIn()
	assert.Equal(t, 2, s.SignInAttempts)

	s.ResetSignIns()
	assert.Zero(t, s.SignInAttempts)
}

func TestSession_OAuthRoundTrip(t *testing.T) {
	s := &domain.Session{}
	s.BeginOAuth(domain.ProviderTwitter, "state-1", "verifier-1")

	provider, state, verifier := s.EndOAuth()
	assert.Equal(t, domain.ProviderTwitter, provider)
	assert.Equal(t, "state-1", state)
	assert.Equal(t, "verifier-1", verifier)

	provider, state, verifier = s.EndOAuth()
	assert.Empty(t, provider, "state is single use")
	assert.Empty(t, state)
	assert.Empty(t, verifier)
}

func TestSession_Clone(t *testing.T) {
	s := &domain.Session{ID: "sid", UserID: "user-1", Flash: []string{"hi"}}

	c := s.Clone()
	c.Flash[0] = "changed"
	c.UserID = ""

	assert.Equal(t, []string{"hi"}, s.Flash)
	assert.Equal(t, "user-1", s.UserID)
	assert.True(t, s.IsAuthenticated())
	assert.False(t, c.IsAuthenticated())
}

func TestParseAuthProvider(t *testing.T) {
	tests := []struct {
		in     string
		want   domain.AuthProvider
		wantOK bool
	}{
		{in: "google", want: domain.ProviderGoogle, wantOK: true},
		{in: "Facebook", want: domain.ProviderFacebook, wantOK: true},
		{in: "twitter", want: domain.ProviderTwitter, wantOK: true},
		{in: "local", wantOK: false},
		{in: "myspace", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := domain.ParseAuthProvider(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "Twitter", domain.ProviderTwitter.DisplayName())
}

func TestUser_ProviderIDs(t *testing.T) {
	u := &domain.User{}
	assert.False(t, u.HasPassword())
	assert.Empty(t, u.ProviderID(domain.ProviderGoogle))

	u.SetProviderID(domain.ProviderGoogle, "g-1")
	assert.Equal(t, "g-1", u.ProviderID(domain.ProviderGoogle))
	assert.Empty(t, u.ProviderID(domain.ProviderFacebook))

	hash := "hash"
	u.PasswordHash = &hash
	assert.True(t, u.HasPassword())
}
