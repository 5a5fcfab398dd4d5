package backend

import (
	"context"
	"time"

	"cashify/internal/services"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the gateway instance and optional cleanup function
type BackendResult struct {
	Gateway services.Gateway
	Cleanup CleanupFunc
}

// Factory creates gateways based on configuration
type Factory interface {
	// CreateBackend creates a gateway instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// REST specific
	APIBaseURL        string
	HTTPClientTimeout time.Duration
	// Location is the zone the API's zoneless timestamps are read and
	// written in. Nil means time.Local.
	Location *time.Location

	// Memory specific
	Seed    bool
	SeedNow func() time.Time
}

// BackendType represents the type of backend
type BackendType string

const (
	RESTBackend   BackendType = "rest"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case RESTBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
