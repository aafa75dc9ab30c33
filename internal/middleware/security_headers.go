package middleware

import "github.com/gin-contrib/secure"

// hstsMaxAge is 180 days, in seconds.
const hstsMaxAge = 15552000

// SecureConfig returns the hardening headers sent on every response.
// Strict-Transport-Security is only sent in production, where TLS terminates in front of us.
// IsDevelopment stays off since it would drop every header, not just HSTS.
func SecureConfig(isProduction bool) secure.Config {
	cfg := secure.Config{
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		IENoOpen:                true,
		ReferrerPolicy:          "no-referrer",
	}
	if isProduction {
		cfg.STSSeconds = hstsMaxAge
		cfg.STSIncludeSubdomains = true
	}
	return cfg
}
