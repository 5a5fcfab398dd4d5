package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:               "8081",
		APIBaseURL:         DefaultAPIBaseURL,
		DataBackend:        "rest",
		SessionTTL:         time.Hour,
		SessionMaxEntries:  100,
		RateLimitPerMinute: 60,
		TrustedProxies:     []string{"127.0.0.0/8"},
		LogFormat:          "text",
		Locale:             "es",
		Currency:           "USD",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid rest backend config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name: "memory backend ignores API URL",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.APIBaseURL = "not a url"
			},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sqlite" },
			wantErr:     true,
			errorString: "invalid data backend 'sqlite': must be one of [rest memory]",
		},
		{
			name:        "invalid API URL scheme",
			mutate:      func(c *Config) { c.APIBaseURL = "ftp://localhost:8080/api" },
			wantErr:     true,
			errorString: "invalid API URL scheme 'ftp': must be 'http' or 'https'",
		},
		{
			name:        "API URL without host",
			mutate:      func(c *Config) { c.APIBaseURL = "http:///api" },
			wantErr:     true,
			errorString: "missing host",
		},
		{
			name:        "negative client timeout",
			mutate:      func(c *Config) { c.HTTPClientTimeout = -time.Second },
			wantErr:     true,
			errorString: "invalid HTTP client timeout -1s: must not be negative",
		},
		{
			name:        "session TTL too short",
			mutate:      func(c *Config) { c.SessionTTL = 30 * time.Second },
			wantErr:     true,
			errorString: "invalid session TTL 30s: must be at least 1 minute",
		},
		{
			name:        "session max zero",
			mutate:      func(c *Config) { c.SessionMaxEntries = 0 },
			wantErr:     true,
			errorString: "invalid session max 0: must be at least 1",
		},
		{
			name:        "rate limit zero",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0: must be at least 1 per minute",
		},
		{
			name:        "bad trusted proxy",
			mutate:      func(c *Config) { c.TrustedProxies = []string{"10.0.0.1"} },
			wantErr:     true,
			errorString: "invalid trusted proxy '10.0.0.1'",
		},
		{
			name:        "bad log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "bad currency",
			mutate:      func(c *Config) { c.Currency = "XYZW" },
			wantErr:     true,
			errorString: "invalid currency 'XYZW'",
		},
		{
			name:        "unknown timezone",
			mutate:      func(c *Config) { c.Timezone = "Mars/Olympus" },
			wantErr:     true,
			errorString: "invalid timezone 'Mars/Olympus'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.SessionMaxEntries = 0
	cfg.RateLimitPerMinute = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 3 {
		t.Errorf("expected 3 collected errors, got %d in %q", got, err.Error())
	}
}

func TestLoad(t *testing.T) {
	for _, key := range []string{"PORT", "API_URL", "NEXT_PUBLIC_API_URL", "DATA_BACKEND", "SESSION_TTL",
		"SESSION_MAX", "RATE_LIMIT_PER_MINUTE", "COOKIE_SECURE", "TRUSTED_PROXIES", "HTTP_CLIENT_TIMEOUT", "TIMEZONE"} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.APIBaseURL != DefaultAPIBaseURL {
			t.Errorf("Load() APIBaseURL = %v, want %v", cfg.APIBaseURL, DefaultAPIBaseURL)
		}
		if cfg.DataBackend != "rest" {
			t.Errorf("Load() DataBackend = %v, want rest", cfg.DataBackend)
		}
		if cfg.SessionTTL != 12*time.Hour {
			t.Errorf("Load() SessionTTL = %v, want 12h", cfg.SessionTTL)
		}
		if cfg.HTTPClientTimeout != 0 {
			t.Errorf("Load() HTTPClientTimeout = %v, want 0", cfg.HTTPClientTimeout)
		}
		if len(cfg.TrustedProxies) != 4 {
			t.Errorf("Load() TrustedProxies = %v, want 4 private ranges", cfg.TrustedProxies)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate, got %v", err)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("NEXT_PUBLIC_API_URL", "http://api.internal:8080/api")
		t.Setenv("DATA_BACKEND", "memory")
		t.Setenv("SESSION_TTL", "30m")
		t.Setenv("SESSION_MAX", "50")
		t.Setenv("COOKIE_SECURE", "true")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, ,192.168.0.0/16")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.APIBaseURL != "http://api.internal:8080/api" {
			t.Errorf("Load() APIBaseURL = %v, want fallback variable", cfg.APIBaseURL)
		}
		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.SessionTTL != 30*time.Minute {
			t.Errorf("Load() SessionTTL = %v, want 30m", cfg.SessionTTL)
		}
		if cfg.SessionMaxEntries != 50 {
			t.Errorf("Load() SessionMaxEntries = %v, want 50", cfg.SessionMaxEntries)
		}
		if !cfg.CookieSecure {
			t.Error("Load() CookieSecure = false, want true")
		}
		if len(cfg.TrustedProxies) != 2 {
			t.Errorf("Load() TrustedProxies = %v, want 2 entries", cfg.TrustedProxies)
		}
	})

	t.Run("API_URL wins over fallback", func(t *testing.T) {
		t.Setenv("API_URL", "https://cashify.example/api")
		t.Setenv("NEXT_PUBLIC_API_URL", "http://other/api")

		if got := Load().APIBaseURL; got != "https://cashify.example/api" {
			t.Errorf("Load() APIBaseURL = %v", got)
		}
	})

	t.Run("invalid numbers fall back to defaults", func(t *testing.T) {
		t.Setenv("SESSION_MAX", "many")
		t.Setenv("SESSION_TTL", "forever")

		cfg := Load()
		if cfg.SessionMaxEntries != 1000 {
			t.Errorf("Load() SessionMaxEntries = %v, want 1000", cfg.SessionMaxEntries)
		}
		if cfg.SessionTTL != 12*time.Hour {
			t.Errorf("Load() SessionTTL = %v, want 12h", cfg.SessionTTL)
		}
	})
}
