package domain

import "strings"

// AuthProvider names an authentication method.
type AuthProvider string

const (
	ProviderLocal    AuthProvider = "local"
	ProviderGoogle   AuthProvider = "google"
	ProviderFacebook AuthProvider = "facebook"
	ProviderTwitter  AuthProvider = "twitter"
)

// ParseAuthProvider maps a route segment onto a known external provider.
func ParseAuthProvider(s string) (AuthProvider, bool) {
	switch p := AuthProvider(strings.ToLower(s)); p {
	case ProviderGoogle, ProviderFacebook, ProviderTwitter:
		return p, true
	default:
		return "", false
	}
}

// DisplayName is the capitalised provider name used in user-facing messages.
func (p AuthProvider) DisplayName() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// User represents an account of the application in the domain.
type User struct {
	UserID     string  `json:"userID"`
	Username   string  `json:"username"`
	Email      string  `json:"email,omitempty"`
	GivenName  string  `json:"givenName,omitempty"`
	FamilyName string  `json:"familyName,omitempty"`
	GoogleID   *string `json:"googleID,omitempty"`
	FacebookID *string `json:"facebookID,omitempty"`
	TwitterID  *string `json:"twitterID,omitempty"`

	// PasswordHash is nil for accounts created through an external provider.
	PasswordHash *string `json:"-"`

	Verified bool `json:"verified"`
	Enabled  bool `json:"enabled"`
	Admin    bool `json:"admin"`

	Login      AccessInfo `json:"login"`
	Registered AccessInfo `json:"registered"`
	AuditFields
}

// ProviderID returns the external identifier stored for provider, or "".
func (u *User) ProviderID(provider AuthProvider) string {
	var id *string
	switch provider {
	case ProviderGoogle:
		id = u.GoogleID
	case ProviderFacebook:
		id = u.FacebookID
	case ProviderTwitter:
		id = u.TwitterID
	}
	if id == nil {
		return ""
	}
	return *id
}

// SetProviderID links the user to an external identity.
func (u *User) SetProviderID(provider AuthProvider, id string) {
	switch provider {
	case ProviderGoogle:
		u.GoogleID = &id
	case ProviderFacebook:
		u.FacebookID = &id
	case ProviderTwitter:
		u.TwitterID = &id
	}
}

// HasPassword reports whether the account can sign in locally.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// ProviderProfile is the identity an external provider returned after a successful exchange.
type ProviderProfile struct {
	Provider    AuthProvider
	ID          string
	DisplayName string
	GivenName   string
	FamilyName  string
	Email       string
}

// UsernameHint is the name a new account created from this profile starts from.
// Google accounts use the given name, the other providers their display name.
func (p ProviderProfile) UsernameHint() string {
	if p.Provider == ProviderGoogle && p.GivenName != "" {
		return p.GivenName
	}
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.GivenName
}
