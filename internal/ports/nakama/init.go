package nakama

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/heroiclabs/nakama-common/runtime"
	"go.uber.org/zap"

	"cosanostra/internal/app"
	"cosanostra/internal/app/session"
	"cosanostra/internal/catalog"
	"cosanostra/internal/config"
	"cosanostra/internal/ports"
	"cosanostra/internal/ports/redisstore"
)

// InitModule loads the catalog, wires the session service and registers RPCs and hooks.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	var env config.Env
	runtimeEnv, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if err := config.ParseEnvMap(&env, runtimeEnv); err != nil {
		return fmt.Errorf("parse runtime env: %w", err)
	}

	cat, err := loadCatalog(env.CatalogPath)
	if err != nil {
		return err
	}
	for _, issue := range cat.Issues() {
		logger.Warn("catalog: %s", issue)
	}
	logger.Info("Loaded %d cards from %s", cat.Len(), env.CatalogPath)

	if env.GameConfigPath != "" {
		if err := config.LoadGameConfig(env.GameConfigPath); err != nil {
			return err
		}
	}
	rules := app.RulesFromConfig(config.GetGameConfig())

	seed := env.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	store, err := newSessionStore(ctx, env, nk)
	if err != nil {
		return err
	}

	game := app.NewService(cat, rules, rng)
	sessions := session.NewService(game, store, NewNakamaNotifier(nk), NewNakamaAccountAdapter(nk), rand.New(rand.NewSource(seed+1)))
	handlers := NewHandlers(sessions, cat)

	if err := RegisterRPCs(initializer, handlers); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(handlers.AfterAuthenticateDevice); err != nil {
		return err
	}

	logger.Info("Cosa Nostra Go module loaded.")
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	cat, err := catalog.LoadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// newSessionStore uses Redis when an address is configured and Nakama storage otherwise.
func newSessionStore(ctx context.Context, env config.Env, nk runtime.NakamaModule) (ports.SessionStore, error) {
	if env.RedisAddr == "" {
		return NewNakamaSessionStore(nk), nil
	}

	level, err := zap.ParseAtomicLevel(env.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	zlog, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: env.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", env.RedisAddr, err)
	}
	zlog.Info("session store ready", zap.String("redis", env.RedisAddr), zap.String("prefix", env.RedisPrefix))
	return redisstore.NewStore(rdb, env.RedisPrefix, zlog), nil
}
