package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/leapstack-labs/leapcrud/pkg/core"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Adapter)
)

// Register adds an adapter factory to the registry.
// Called by adapter implementations in their init() functions.
func Register(name string, factory func(*slog.Logger) Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves an adapter factory by name.
func Get(name string) (func(*slog.Logger) Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// NewAdapter creates a new adapter instance based on config type.
// The logger parameter is passed to the adapter constructor (nil uses discard logger).
func NewAdapter(cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      cfg.Type,
			Available: ListAdapters(),
		}
	}
	return factory(logger), nil
}

// Open creates an adapter for cfg and connects it.
// Connection failures are reported as *core.ConnectionError.
func Open(ctx context.Context, cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	a, err := NewAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := a.Connect(ctx, cfg); err != nil {
		return nil, &core.ConnectionError{Target: DescribeTarget(cfg), Err: err}
	}
	return a, nil
}

// Opener opens a fresh connection for a single operation.
type Opener func(ctx context.Context) (Adapter, error)

// NewOpener binds cfg and logger into an Opener.
func NewOpener(cfg core.AdapterConfig, logger *slog.Logger) Opener {
	return func(ctx context.Context) (Adapter, error) {
		return Open(ctx, cfg, logger)
	}
}

// DescribeTarget renders a password-free description of the connection target.
func DescribeTarget(cfg core.AdapterConfig) string {
	switch {
	case cfg.Host != "":
		port := ""
		if cfg.Port != 0 {
			port = fmt.Sprintf(":%d", cfg.Port)
		}
		return fmt.Sprintf("%s://%s%s/%s", cfg.Type, cfg.Host, port, cfg.Database)
	case cfg.Path != "":
		return fmt.Sprintf("%s:%s", cfg.Type, cfg.Path)
	default:
		return cfg.Type
	}
}

// ListAdapters returns all registered adapter names (sorted).
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if an adapter type is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	return fmt.Sprintf("unknown adapter type %q\nAvailable adapters: %v\nHint: Check your target.type in leapcrud.yaml", e.Type, e.Available)
}
