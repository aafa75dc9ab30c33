package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/gallery_app/internal/apperrors"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
)

const (
	msgCaptchaMissing = "Please complete the captcha"
	msgCaptchaFailed  = "Captcha verification failed, please try again"
)

// recaptchaResponse is the body returned by the siteverify endpoint.
type recaptchaResponse struct {
	Success    bool     `json:"success"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// RecaptchaService checks reCAPTCHA responses against Google's siteverify API.
// With an empty secret every response passes.
type RecaptchaService struct {
	BaseService
	secret     string
	verifyURL  string
	httpClient *http.Client
}

// RecaptchaOption defines a functional option for configuring the RecaptchaService
type RecaptchaOption func(*RecaptchaService)

// WithRecaptchaVerifyURL points the service at another siteverify endpoint.
func WithRecaptchaVerifyURL(verifyURL string) RecaptchaOption {
	return func(s *RecaptchaService) {
		if verifyURL != "" {
			s.verifyURL = verifyURL
		}
	}
}

// WithRecaptchaHTTPClient replaces the HTTP client used to reach the endpoint.
func WithRecaptchaHTTPClient(client *http.Client) RecaptchaOption {
	return func(s *RecaptchaService) {
		s.httpClient = client
	}
}

func NewRecaptchaService(secret string, options ...RecaptchaOption) *RecaptchaService {
	s := &RecaptchaService{
		secret:     secret,
		verifyURL:  "https://www.google.com/recaptcha/api/siteverify",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.HumanVerifierSvc = (*RecaptchaService)(nil)

// Verify returns nil when the challenge passed, an *apperrors.AuthFailure when it was
// missing or rejected, and a plain error when the endpoint could not be consulted.
func (s *RecaptchaService) Verify(ctx context.Context, response string, remoteIP string) error {
	if s.secret == "" {
		return nil
	}
	if strings.TrimSpace(response) == "" {
		return apperrors.NewAuthFailureWithCause(apperrors.ErrVerificationFailed, msgCaptchaMissing)
	}

	form := url.Values{}
	form.Set("secret", s.secret)
	form.Set("response", response)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build recaptcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach recaptcha: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recaptcha returned non-200 status: %s", resp.Status)
	}

	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode recaptcha response: %w", err)
	}

	if !result.Success {
		s.LogWarn(ctx, "Captcha rejected", slog.Any("error_codes", result.ErrorCodes), slog.String("remote_ip", remoteIP))
		return apperrors.NewAuthFailureWithCause(apperrors.ErrVerificationFailed, msgCaptchaFailed)
	}
	return nil
}
