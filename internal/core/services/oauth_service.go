package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	"github.com/SscSPs/gallery_app/internal/core/domain"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/dto"
	"github.com/SscSPs/gallery_app/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	facebookMeURL     = "https://graph.facebook.com/me?fields=id,name,email,first_name,last_name"
	twitterMeURL      = "https://api.twitter.com/2/users/me"
)

// twitterEndpoint is Twitter's OAuth 2.0 endpoint; x/oauth2 ships none for it.
var twitterEndpoint = oauth2.Endpoint{
	AuthURL:   "https://twitter.com/i/oauth2/authorize",
	TokenURL:  "https://api.twitter.com/2/oauth2/token",
	AuthStyle: oauth2.AuthStyleInHeader,
}

// ProfileFetcher loads the identity behind token. client already carries the token.
type ProfileFetcher func(ctx context.Context, client *http.Client, token *oauth2.Token) (*domain.ProviderProfile, error)

// OAuthProvider is one configured external strategy.
type OAuthProvider struct {
	Name         domain.AuthProvider
	Config       *oauth2.Config
	UsePKCE      bool
	FetchProfile ProfileFetcher
}

// OAuthService implements the Google, Facebook and Twitter strategies.
type OAuthService struct {
	BaseService
	users     portssvc.UserSvcFacade
	providers map[domain.AuthProvider]*OAuthProvider
	order     []domain.AuthProvider
}

// NewOAuthService wires every provider that has credentials in cfg.
func NewOAuthService(cfg *config.Config, users portssvc.UserSvcFacade) *OAuthService {
	var providers []OAuthProvider
	if cfg.Google.Configured() {
		providers = append(providers, OAuthProvider{
			Name: domain.ProviderGoogle,
			Config: &oauth2.Config{
				ClientID:     cfg.Google.ClientID,
				ClientSecret: cfg.Google.ClientSecret,
				RedirectURL:  cfg.CallbackURL(string(domain.ProviderGoogle)),
				Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
				Endpoint:     google.Endpoint,
			},
			UsePKCE:      true,
			FetchProfile: GoogleProfileFetcher(cfg.Google.ClientID, googleUserInfoURL),
		})
	}
	if cfg.Facebook.Configured() {
		providers = append(providers, OAuthProvider{
			Name: domain.ProviderFacebook,
			Config: &oauth2.Config{
				ClientID:     cfg.Facebook.ClientID,
				ClientSecret: cfg.Facebook.ClientSecret,
				RedirectURL:  cfg.CallbackURL(string(domain.ProviderFacebook)),
				Scopes:       []string{"email", "public_profile"},
				Endpoint:     facebook.Endpoint,
			},
			FetchProfile: FacebookProfileFetcher(facebookMeURL),
		})
	}
	if cfg.Twitter.Configured() {
		providers = append(providers, OAuthProvider{
			Name: domain.ProviderTwitter,
			Config: &oauth2.Config{
				ClientID:     cfg.Twitter.ClientID,
				ClientSecret: cfg.Twitter.ClientSecret,
				RedirectURL:  cfg.CallbackURL(string(domain.ProviderTwitter)),
				Scopes:       []string{"users.read", "tweet.read"},
				Endpoint:     twitterEndpoint,
			},
			UsePKCE:      true,
			FetchProfile: TwitterProfileFetcher(twitterMeURL),
		})
	}
	return NewOAuthServiceWithProviders(users, providers...)
}

// NewOAuthServiceWithProviders creates the service from explicit provider definitions.
func NewOAuthServiceWithProviders(users portssvc.UserSvcFacade, providers ...OAuthProvider) *OAuthService {
	s := &OAuthService{
		users:     users,
		providers: make(map[domain.AuthProvider]*OAuthProvider, len(providers)),
	}
	for i := range providers {
		p := providers[i]
		s.providers[p.Name] = &p
		s.order = append(s.order, p.Name)
	}
	return s
}

var _ portssvc.OAuthSvcFacade = (*OAuthService)(nil)

func (s *OAuthService) Providers() []domain.AuthProvider {
	return append([]domain.AuthProvider(nil), s.order...)
}

func (s *OAuthService) HasProvider(provider domain.AuthProvider) bool {
	_, ok := s.providers[provider]
	return ok
}

// AuthCodeURL returns the consent page URL. The verifier's challenge is only sent
// to providers that use PKCE.
func (s *OAuthService) AuthCodeURL(provider domain.AuthProvider, state, verifier string) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("%s login is not available", provider.DisplayName()))
	}

	var opts []oauth2.AuthCodeOption
	if p.UsePKCE && verifier != "" {
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}
	return p.Config.AuthCodeURL(state, opts...), nil
}

// Authenticate exchanges the callback code, loads the provider profile and finds
// or creates the linked user.
func (s *OAuthService) Authenticate(ctx context.Context, provider domain.AuthProvider, code, verifier string, access domain.AccessInfo) (*domain.User, error) {
	p, ok := s.providers[provider]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s login is not available", provider.DisplayName()))
	}

	var opts []oauth2.AuthCodeOption
	if p.UsePKCE && verifier != "" {
		opts = append(opts, oauth2.VerifierOption(verifier))
	}

	token, err := p.Config.Exchange(ctx, code, opts...)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			s.LogWarn(ctx, "Provider rejected authorization code",
				slog.String("provider", string(provider)),
				slog.String("error_code", retrieveErr.ErrorCode))
			return nil, apperrors.NewAuthFailureWithCause(apperrors.ErrUnauthorized, signInFailedMessage(provider))
		}
		return nil, fmt.Errorf("failed to exchange %s oauth code for token: %w", provider, err)
	}

	profile, err := p.FetchProfile(ctx, p.Config.Client(ctx, token), token)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s profile: %w", provider, err)
	}
	profile.Provider = provider
	if profile.ID == "" {
		return nil, fmt.Errorf("%s profile has no id", provider)
	}

	return s.findOrCreate(ctx, profile, access)
}

func (s *OAuthService) findOrCreate(ctx context.Context, profile *domain.ProviderProfile, access domain.AccessInfo) (*domain.User, error) {
	user, err := s.users.GetUserByProviderID(ctx, profile.Provider, profile.ID)
	if err == nil {
		return s.users.RecordLogin(ctx, user, access)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if profile.Email != "" {
		taken, err := s.users.EmailExists(ctx, profile.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewAuthFailureWithCause(apperrors.ErrDuplicate, MsgEmailInUse)
		}
	}

	username, err := s.users.AvailableUsername(ctx, profile.UsernameHint())
	if err != nil {
		return nil, err
	}

	created, err := s.users.CreateUser(ctx, dto.CreateUserRequest{
		Username:       username,
		Email:          profile.Email,
		GivenName:      profile.GivenName,
		FamilyName:     profile.FamilyName,
		Provider:       profile.Provider,
		ProviderUserID: profile.ID,
		Verified:       true,
		Access:         access,
	})
	if err == nil {
		return created, nil
	}

	var dup *apperrors.DuplicateError
	if !errors.As(err, &dup) {
		return nil, err
	}
	// A concurrent callback for the same identity got there first.
	if dup.Field == string(profile.Provider)+"_id" {
		if user, lookupErr := s.users.GetUserByProviderID(ctx, profile.Provider, profile.ID); lookupErr == nil {
			return s.users.RecordLogin(ctx, user, access)
		}
	}
	return nil, apperrors.NewAuthFailureWithCause(err, duplicateMessage(dup.Field))
}

func signInFailedMessage(provider domain.AuthProvider) string {
	return fmt.Sprintf("Sign in with %s failed, please try again", provider.DisplayName())
}

// GoogleProfileFetcher reads the profile from the verified ID token when the token
// response carries one, and from the userinfo endpoint otherwise.
func GoogleProfileFetcher(clientID, userInfoURL string) ProfileFetcher {
	return func(ctx context.Context, client *http.Client, token *oauth2.Token) (*domain.ProviderProfile, error) {
		if raw, ok := token.Extra("id_token").(string); ok && raw != "" {
			payload, err := idtoken.Validate(ctx, raw, clientID)
			if err != nil {
				return nil, fmt.Errorf("google ID token validation failed: %w", err)
			}
			claim := func(key string) string {
				v, _ := payload.Claims[key].(string)
				return v
			}
			return &domain.ProviderProfile{
				ID:          payload.Subject,
				DisplayName: claim("name"),
				GivenName:   claim("given_name"),
				FamilyName:  claim("family_name"),
				Email:       claim("email"),
			}, nil
		}

		var info struct {
			ID         string `json:"id"`
			Email      string `json:"email"`
			Name       string `json:"name"`
			GivenName  string `json:"given_name"`
			FamilyName string `json:"family_name"`
		}
		if err := getJSON(ctx, client, userInfoURL, &info); err != nil {
			return nil, err
		}
		return &domain.ProviderProfile{
			ID:          info.ID,
			DisplayName: info.Name,
			GivenName:   info.GivenName,
			FamilyName:  info.FamilyName,
			Email:       info.Email,
		}, nil
	}
}

// FacebookProfileFetcher reads the profile from the Graph API "me" node.
func FacebookProfileFetcher(meURL string) ProfileFetcher {
	return func(ctx context.Context, client *http.Client, _ *oauth2.Token) (*domain.ProviderProfile, error) {
		var me struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			Email     string `json:"email"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		}
		if err := getJSON(ctx, client, meURL, &me); err != nil {
			return nil, err
		}
		return &domain.ProviderProfile{
			ID:          me.ID,
			DisplayName: me.Name,
			GivenName:   me.FirstName,
			FamilyName:  me.LastName,
			Email:       me.Email,
		}, nil
	}
}

// TwitterProfileFetcher reads the profile from the v2 users/me endpoint.
// Twitter does not disclose email addresses there.
func TwitterProfileFetcher(meURL string) ProfileFetcher {
	return func(ctx context.Context, client *http.Client, _ *oauth2.Token) (*domain.ProviderProfile, error) {
		var me struct {
			Data struct {
				ID       string `json:"id"`
				Name     string `json:"name"`
				Username string `json:"username"`
			} `json:"data"`
		}
		if err := getJSON(ctx, client, meURL, &me); err != nil {
			return nil, err
		}
		displayName := me.Data.Name
		if displayName == "" {
			displayName = me.Data.Username
		}
		return &domain.ProviderProfile{
			ID:          me.Data.ID,
			DisplayName: displayName,
		}, nil
	}
}

func getJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build profile request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("profile endpoint returned non-200 status: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode profile: %w", err)
	}
	return nil
}
