package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/stockflow/dashboard/internal/core/ports"
	"github.com/stockflow/dashboard/internal/core/session"
	"github.com/stockflow/dashboard/internal/infrastructure/db/file"
	"github.com/stockflow/dashboard/internal/infrastructure/db/memory"
	mongodb "github.com/stockflow/dashboard/internal/infrastructure/db/mongo"
	redisdb "github.com/stockflow/dashboard/internal/infrastructure/db/redis"
	"github.com/stockflow/dashboard/internal/infrastructure/db/sqlite"
	"github.com/stockflow/dashboard/internal/pkg/config"
)

type storageKV interface {
	ports.KeyValueStore
	ports.Pinger
}

// backend bundles the adapters selected by STORE_BACKEND.
type backend struct {
	kv       storageKV
	accounts ports.AuthRepository
	events   ports.SessionEventRepository
	closers  []func() error
}

// openBackend connects the configured storage. Accounts and the audit trail
// live in MongoDB when it is the backend and in process memory otherwise.
func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	b := &backend{
		accounts: memory.NewAuthRepository(),
		events:   memory.NewSessionEventRepository(),
	}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		b.kv = memory.NewKVStore()

	case config.BackendFile:
		b.kv = file.NewKVStore(cfg.Store.FilePath)

	case config.BackendSQLite:
		if err := ensureDir(cfg.Store.SQLitePath); err != nil {
			return nil, err
		}
		db, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		kv := sqlite.NewKVStore(db)
		b.kv = kv
		b.closers = append(b.closers, kv.Close)

	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		b.kv = redisdb.NewKVStore(client, cfg.Redis.KeyPrefix)
		b.closers = append(b.closers, client.Close)

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		accounts := mongodb.NewAuthRepository(db)
		if err := accounts.EnsureIndexes(ctx); err != nil {
			_ = mongodb.Disconnect(client)
			return nil, err
		}
		b.kv = mongodb.NewKVStore(db)
		b.accounts = accounts
		b.events = mongodb.NewSessionEventRepository(db)
		b.closers = append(b.closers, func() error { return mongodb.Disconnect(client) })

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Store.Backend)
	}

	log.Info().Str("backend", cfg.Store.Backend).Msg("storage ready")
	return b, nil
}

// Close releases connections in reverse order of acquisition.
func (b *backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// sessionStore builds the session store over the backend slot.
func (b *backend) sessionStore(cfg *config.Config, log zerolog.Logger) *session.Store {
	opts := []session.Option{session.WithKey(cfg.Session.Key)}
	if cfg.Session.Secret != "" {
		opts = append(opts, session.WithCodec(session.NewJWTCodec(cfg.Session.Secret)))
	}
	return session.New(b.kv, log, opts...)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
