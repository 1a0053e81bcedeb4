package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rshade/esgsync/internal/wizard"
)

// Store persists draft envelopes by key.
type Store interface {
	Save(ctx context.Context, key string, env *Envelope) error
	Load(ctx context.Context, key string) (*Envelope, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown draft backend")

// Config selects and configures a backend.
type Config struct {
	Backend    string        `yaml:"backend"`
	Key        string        `yaml:"key"`
	Dir        string        `yaml:"dir"`
	SQLitePath string        `yaml:"sqlite_path"`
	RedisURL   string        `yaml:"redis_url"`
	RedisTTL   time.Duration `yaml:"redis_ttl"`
}

// StorageKey returns the configured key or DefaultKey.
func (c Config) StorageKey() string {
	if strings.TrimSpace(c.Key) == "" {
		return DefaultKey
	}
	return c.Key
}

// Open builds the configured backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendSQLite:
		return OpenSQLiteStore(ctx, cfg.SQLitePath)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.RedisURL, cfg.RedisTTL)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// SaveState wraps state in a new envelope and saves it under key.
func SaveState(ctx context.Context, s Store, key string, state *wizard.State) (*Envelope, error) {
	env, err := NewEnvelope(state)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, key, env); err != nil {
		return nil, err
	}
	return env, nil
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}
