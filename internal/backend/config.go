package backend

import (
	"fmt"
	"net/url"
	"strings"

	"cashify/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(strings.ToLower(appConfig.DataBackend))
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:              backendType,
		APIBaseURL:        appConfig.APIBaseURL,
		HTTPClientTimeout: appConfig.HTTPClientTimeout,
		Location:          appConfig.Location(),
		Seed:              backendType == MemoryBackend,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case RESTBackend:
		if c.APIBaseURL == "" {
			return fmt.Errorf("API base URL is required for rest backend")
		}
		if _, err := url.ParseRequestURI(c.APIBaseURL); err != nil {
			return fmt.Errorf("invalid API base URL %q: %w", c.APIBaseURL, err)
		}
		if c.HTTPClientTimeout < 0 {
			return fmt.Errorf("HTTP client timeout cannot be negative")
		}
	case MemoryBackend:
		// nothing to check
	}

	return nil
}

// GetBackendTypeStrings returns all valid backend type strings
func GetBackendTypeStrings() []string {
	return []string{RESTBackend.String(), MemoryBackend.String()}
}
