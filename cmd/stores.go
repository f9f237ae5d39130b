package cmd

import (
	"context"
	"fmt"

	"heartmatch-backend/internal/config"
	"heartmatch-backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// stores bundles the storage the services run on
type stores struct {
	users    repository.UserStore
	profiles repository.ProfileStore
	swipes   repository.SwipeStore
	health   func(ctx context.Context) error
	closers  []func()
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// openStores connects to the configured storage driver
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		mem := repository.NewMemoryStore()
		return &stores{users: mem, profiles: mem, swipes: mem}, nil
	}

	db, err := connectDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	s := &stores{
		users:    repository.NewUserRepository(db),
		profiles: repository.NewProfileRepository(db),
		swipes:   repository.NewSwipeRepository(db),
		health:   db.Ping,
		closers:  []func(){db.Close},
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, profile cache will fall back to the database")
		} else {
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Profile cache enabled")
		}
		s.profiles = repository.NewCachedProfileStore(s.profiles, client, cfg.Redis.TTL)
		s.closers = append(s.closers, func() { client.Close() })
	}

	return s, nil
}

func connectDB(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	db, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info().Msg("Database connection established")
	return db, nil
}
