package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cashify/internal/api"
	"cashify/internal/api/memory"
	"cashify/internal/log"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case RESTBackend:
		return f.createRESTBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createRESTBackend(config Config) (*BackendResult, error) {
	httpClient := &http.Client{Timeout: config.HTTPClientTimeout}
	client, err := api.New(config.APIBaseURL, httpClient, config.Location, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize REST client: %w", err)
	}

	f.logger.Info("Initialized REST backend",
		log.FieldUpstream, client.BaseURL(),
		"timeout", config.HTTPClientTimeout.String(),
		"timezone", client.Location().String())

	return &BackendResult{
		Gateway: client,
		Cleanup: func() error {
			httpClient.CloseIdleConnections()
			return nil
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store := memory.New()

	if config.Seed {
		now := time.Now
		if config.SeedNow != nil {
			now = config.SeedNow
		}
		if err := store.Seed(ctx, now()); err != nil {
			return nil, fmt.Errorf("failed to seed memory backend: %w", err)
		}
		f.logger.Info("Initialized memory backend", "seeded", true, "demo_email", memory.DemoEmail)
	} else {
		f.logger.Info("Initialized memory backend", "seeded", false)
	}

	return &BackendResult{
		Gateway: store,
		Cleanup: nil, // No cleanup needed for memory backend
	}, nil
}
