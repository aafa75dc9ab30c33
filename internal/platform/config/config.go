package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// DefaultSignInCaptchaAfter is the number of consecutive failed signins after which
// the captcha is required.
const DefaultSignInCaptchaAfter = 5

// OAuthClient holds the credentials of one external provider.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
}

// Configured reports whether both credentials are present.
func (c OAuthClient) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Sessions
	SessionStore      string
	SessionCookieName string
	SessionMaxAge     time.Duration
	RedisAddr         string
	RedisPassword     string
	RedisDB           int

	// RedirectDomain is the public origin of this server; provider callbacks are built from it.
	RedirectDomain  string
	FrontendBaseURL string
	SuccessRedirect string

	// External OAuth Providers
	Google   OAuthClient
	Facebook OAuthClient
	Twitter  OAuthClient

	// Human verification gate
	RecaptchaSiteKey   string
	RecaptchaSecret    string
	RecaptchaVerifyURL string
	SignInCaptchaAfter int
	AuthRateLimit      string

	// Email verification
	VerificationTokenSecret string
	VerificationTokenExpiry time.Duration
	TokenIssuer             string
	SMTPHost                string
	SMTPPort                int
	SMTPUser                string
	SMTPPassword            string
	SMTPFrom                string

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "5000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("SESSION_STORE", SessionStoreMemory)
	viper.SetDefault("SESSION_COOKIE_NAME", "gallery.sid")
	viper.SetDefault("SESSION_MAX_AGE", "720h")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIRECT_DOMAIN", "http://localhost:5000")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("SUCCESS_REDIRECT", "/")
	viper.SetDefault("RECAPTCHA_SECRET", "")
	viper.SetDefault("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify")
	viper.SetDefault("SIGNIN_CAPTCHA_AFTER", DefaultSignInCaptchaAfter)
	viper.SetDefault("AUTH_RATE_LIMIT", "20-M")
	viper.SetDefault("VERIFICATION_TOKEN_SECRET", "")
	viper.SetDefault("VERIFICATION_TOKEN_EXPIRY", "24h")
	viper.SetDefault("TOKEN_ISSUER", "gallery-app")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.SessionStore = strings.ToLower(viper.GetString("SESSION_STORE"))
	if cfg.SessionStore != SessionStoreMemory && cfg.SessionStore != SessionStoreRedis {
		log.Printf("Warning: Unknown SESSION_STORE ('%s'). Defaulting to %s.\n", cfg.SessionStore, SessionStoreMemory)
		cfg.SessionStore = SessionStoreMemory
	}
	if cfg.IsProduction && cfg.SessionStore == SessionStoreMemory {
		log.Println("Warning: In-memory session store in production; sessions are lost on restart and not shared between instances.")
	}
	cfg.SessionCookieName = viper.GetString("SESSION_COOKIE_NAME")
	cfg.SessionMaxAge = parseDuration("SESSION_MAX_AGE", 30*24*time.Hour)
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	cfg.RedirectDomain = strings.TrimRight(viper.GetString("REDIRECT_DOMAIN"), "/")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.SuccessRedirect = viper.GetString("SUCCESS_REDIRECT")

	cfg.Google = OAuthClient{ClientID: viper.GetString("GOOGLE_CLIENT_ID"), ClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET")}
	cfg.Facebook = OAuthClient{ClientID: viper.GetString("FACEBOOK_CLIENT_ID"), ClientSecret: viper.GetString("FACEBOOK_CLIENT_SECRET")}
	cfg.Twitter = OAuthClient{ClientID: viper.GetString("TWITTER_CLIENT_ID"), ClientSecret: viper.GetString("TWITTER_CLIENT_SECRET")}

	// Log warnings for missing OAuth credentials
	for name, client := range map[string]OAuthClient{"GOOGLE": cfg.Google, "FACEBOOK": cfg.Facebook, "TWITTER": cfg.Twitter} {
		if !client.Configured() {
			log.Printf("Warning: %s_CLIENT_ID or %s_CLIENT_SECRET not set. %s login will not be offered.\n", name, name, strings.ToLower(name))
		}
	}

	cfg.RecaptchaSiteKey = viper.GetString("RECAPTCHA_SITE_KEY")
	cfg.RecaptchaSecret = viper.GetString("RECAPTCHA_SECRET")
	if cfg.RecaptchaSecret == "" {
		log.Println("Warning: RECAPTCHA_SECRET not set. Human verification is disabled.")
	} else if cfg.RecaptchaSiteKey == "" {
		// The gate would reject every form post since no page can render the widget.
		return nil, errors.New("RECAPTCHA_SITE_KEY must be set when RECAPTCHA_SECRET is set")
	}
	cfg.RecaptchaVerifyURL = viper.GetString("RECAPTCHA_VERIFY_URL")
	cfg.SignInCaptchaAfter = viper.GetInt("SIGNIN_CAPTCHA_AFTER")
	if cfg.SignInCaptchaAfter <= 0 {
		log.Printf("Warning: Invalid value for SIGNIN_CAPTCHA_AFTER (%d). Defaulting to %d.\n", cfg.SignInCaptchaAfter, DefaultSignInCaptchaAfter)
		cfg.SignInCaptchaAfter = DefaultSignInCaptchaAfter
	}
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")

	cfg.VerificationTokenSecret = viper.GetString("VERIFICATION_TOKEN_SECRET")
	if cfg.VerificationTokenSecret == "" {
		log.Println("Warning: VERIFICATION_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
		cfg.VerificationTokenSecret = "default_insecure_verification_secret_please_change_this_!@#$"
	}
	cfg.VerificationTokenExpiry = parseDuration("VERIFICATION_TOKEN_EXPIRY", 24*time.Hour)
	cfg.TokenIssuer = viper.GetString("TOKEN_ISSUER")

	cfg.SMTPHost = viper.GetString("SMTP_HOST")
	cfg.SMTPPort = viper.GetInt("SMTP_PORT")
	cfg.SMTPUser = viper.GetString("SMTP_USER")
	cfg.SMTPPassword = viper.GetString("SMTP_PASSWORD")
	cfg.SMTPFrom = viper.GetString("SMTP_FROM")
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}
	if cfg.SMTPHost == "" {
		log.Println("Warning: SMTP_HOST not set. Verification emails will only be logged.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

// CallbackURL is where provider redirects back to after consent.
func (c *Config) CallbackURL(provider string) string {
	return c.RedirectDomain + "/auth/" + provider + "/callback"
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
