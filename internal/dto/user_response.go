package dto

import (
	"time"

	"github.com/SscSPs/gallery_app/internal/core/domain"
)

type UserResponse struct {
	UserID     string    `json:"userID"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	GivenName  string    `json:"givenName,omitempty"`
	FamilyName string    `json:"familyName,omitempty"`
	Providers  []string  `json:"providers"`
	Verified   bool      `json:"verified"`
	Enabled    bool      `json:"enabled"`
	Admin      bool      `json:"admin"`
	LastLogin  time.Time `json:"lastLogin"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	providers := []string{}
	if user.HasPassword() {
		providers = append(providers, string(domain.ProviderLocal))
	}
	for _, p := range []domain.AuthProvider{domain.ProviderGoogle, domain.ProviderFacebook, domain.ProviderTwitter} {
		if user.ProviderID(p) != "" {
			providers = append(providers, string(p))
		}
	}
	return UserResponse{
		UserID:     user.UserID,
		Username:   user.Username,
		Email:      user.Email,
		GivenName:  user.GivenName,
		FamilyName: user.FamilyName,
		Providers:  providers,
		Verified:   user.Verified,
		Enabled:    user.Enabled,
		Admin:      user.Admin,
		LastLogin:  user.Login.At,
		CreatedAt:  user.CreatedAt,
	}
}
