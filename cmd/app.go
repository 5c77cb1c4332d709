package cmd

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/warehouse-crm/auth-service/internal/core/service"
	"github.com/warehouse-crm/auth-service/internal/infrastructure/config"
	"github.com/warehouse-crm/auth-service/internal/infrastructure/db/mongo"
	"github.com/warehouse-crm/auth-service/internal/infrastructure/db/redis"
	"github.com/warehouse-crm/auth-service/internal/infrastructure/token"
	"github.com/warehouse-crm/auth-service/pkg/logger"
)

const serviceName = "warehouse-auth"

// app holds the wired dependencies shared by the subcommands.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	mongo    *mongodriver.Client
	redis    *goredis.Client
	accounts *service.AccountService
	sessions *service.SessionService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	repo := mongo.NewAccountRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = rdb.Close()
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	issuer, err := token.NewIssuer(token.Config{
		Secret:     cfg.Token.Secret,
		Issuer:     cfg.Token.Issuer,
		AccessTTL:  cfg.Token.AccessTTL,
		RefreshTTL: cfg.Token.RefreshTTL,
	}, redis.NewRevocationList(rdb))
	if err != nil {
		_ = rdb.Close()
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	passwords := service.NewPasswordHasher(cfg.BcryptCost)
	return &app{
		cfg:      cfg,
		log:      log,
		mongo:    client,
		redis:    rdb,
		accounts: service.NewAccountService(repo, passwords, service.NewPhoneNormalizer(cfg.PhoneRegion), log),
		sessions: service.NewSessionService(repo, issuer, passwords, log),
	}, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.redis.Close(); err != nil {
		a.log.Warn().Err(err).Msg("redis close")
	}
	if err := a.mongo.Disconnect(ctx); err != nil {
		a.log.Warn().Err(err).Msg("mongo disconnect")
	}
}
