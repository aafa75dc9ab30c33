package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_SignInCaptchaAfter(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: DefaultSignInCaptchaAfter},
		{name: "custom", value: "3", want: 3},
		{name: "zero", value: "0", want: DefaultSignInCaptchaAfter},
		{name: "negative", value: "-2", want: DefaultSignInCaptchaAfter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SIGNIN_CAPTCHA_AFTER", tt.value)

			cfg, err := LoadConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.SignInCaptchaAfter)
		})
	}
}

func TestLoadConfig_RecaptchaKeys(t *testing.T) {
	t.Setenv("RECAPTCHA_SECRET", "secret")
	t.Setenv("RECAPTCHA_SITE_KEY", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "RECAPTCHA_SITE_KEY")

	t.Setenv("RECAPTCHA_SITE_KEY", "site-key")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "site-key", cfg.RecaptchaSiteKey)
	assert.Equal(t, "secret", cfg.RecaptchaSecret)

	t.Setenv("RECAPTCHA_SECRET", "")
	t.Setenv("RECAPTCHA_SITE_KEY", "")
	_, err = LoadConfig()
	assert.NoError(t, err, "no secret leaves the gate disabled")
}
