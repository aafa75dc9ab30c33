package dto

import (
	"github.com/SscSPs/gallery_app/internal/core/domain"
)

// CreateUserRequest carries everything needed to create an account,
// whether it comes from the local signup form or an external provider profile.
type CreateUserRequest struct {
	Username       string
	Email          string
	Password       string // empty for provider accounts
	GivenName      string
	FamilyName     string
	Provider       domain.AuthProvider
	ProviderUserID string
	Verified       bool
	Access         domain.AccessInfo
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit     int    `form:"limit,default=20"`
	PageToken string `form:"page_token"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users         []UserResponse `json:"users"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User, nextPageToken string) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users:         userResponses,
		NextPageToken: nextPageToken,
	}
}
