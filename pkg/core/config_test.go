package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig(GenerationV2)

	assert.Equal(t, GenerationV2, config.Generation)
	assert.Nil(t, config.Credentials)
	assert.True(t, config.PublicOnly())
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, 10, config.RateLimitPerSecond)
	assert.False(t, config.CircuitBreakerEnabled)
	assert.Equal(t, 5, config.CircuitBreakerFailThreshold)
	assert.Equal(t, 2, config.CircuitBreakerSuccessThreshold)
	assert.Equal(t, 30*time.Second, config.CircuitBreakerTimeout)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "https://api.crypto.com/v2/", config.ResolvedBaseURL())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid_v1",
			config: DefaultConfig(GenerationV1),
		},
		{
			name:   "valid_v2_with_credentials",
			config: DefaultConfig(GenerationV2).WithCredentials(&Credentials{APIKey: "k", SecretKey: "s"}),
		},
		{
			name:    "unknown_generation",
			config:  &Config{Generation: 7, Timeout: time.Second, RateLimitPerSecond: 10},
			wantErr: true,
			errMsg:  "Generation",
		},
		{
			name:    "invalid_timeout",
			config:  DefaultConfig(GenerationV1).WithTimeout(0),
			wantErr: true,
			errMsg:  "Timeout",
		},
		{
			name:    "invalid_rate_limit",
			config:  DefaultConfig(GenerationV1).WithRateLimit(0),
			wantErr: true,
			errMsg:  "RateLimitPerSecond",
		},
		{
			name:    "invalid_base_url",
			config:  DefaultConfig(GenerationV1).WithBaseURL("not a url"),
			wantErr: true,
			errMsg:  "BaseURL",
		},
		{
			name:    "invalid_log_level",
			config:  DefaultConfig(GenerationV1).WithLogLevel("verbose"),
			wantErr: true,
			errMsg:  "LogLevel",
		},
		{
			name: "breaker_without_thresholds",
			config: func() *Config {
				c := DefaultConfig(GenerationV2).WithCircuitBreaker(true)
				c.CircuitBreakerFailThreshold = 0
				return c
			}(),
			wantErr: true,
			errMsg:  "CircuitBreakerFailThreshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tt.errMsg), err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_BaseURLOverride(t *testing.T) {
	config := DefaultConfig(GenerationV1).WithBaseURL("https://uat-api.3ona.co/v1/")
	assert.Equal(t, "https://uat-api.3ona.co/v1/", config.ResolvedBaseURL())
}

func TestCredentials(t *testing.T) {
	var nilCreds *Credentials
	assert.False(t, nilCreds.Valid())
	assert.False(t, (&Credentials{APIKey: "key"}).Valid())
	assert.False(t, (&Credentials{SecretKey: "secret"}).Valid())
	assert.True(t, (&Credentials{APIKey: "key", SecretKey: "secret"}).Valid())

	creds := Credentials{APIKey: "abcd1234efgh5678", SecretKey: "topsecret"}
	s := creds.String()
	assert.Equal(t, "Credentials{APIKey:abcd****5678}", s)
	assert.NotContains(t, s, "topsecret")
	assert.Equal(t, "Credentials{APIKey:****}", Credentials{APIKey: "short"}.String())
}
