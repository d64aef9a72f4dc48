package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/config"
	"github.com/noah-isme/backend-pricing/internal/lock"
	"github.com/noah-isme/backend-pricing/internal/obs"
	"github.com/noah-isme/backend-pricing/internal/order"
	"github.com/noah-isme/backend-pricing/internal/pricesplit"
	"github.com/noah-isme/backend-pricing/internal/promotion"
	"github.com/noah-isme/backend-pricing/internal/reprice"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger("json", "info").With().
		Str("env", cfg.AppEnv).
		Str("component", "worker").
		Logger()

	obs.MustRegisterDomainMetrics("pricing", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()

	types := adjustment.DefaultRegistry()
	transformer := adjustment.Transformer{Types: types}

	handler := &reprice.Handler{
		Orders: order.Repo{Pool: pool, Types: types},
		Svc:    order.Service{Transformer: transformer, Rounding: cfg.RoundingMode},
		Promotions: promotion.Repo{Pool: pool},
		Distributor: promotion.Distributor{
			Splitter: pricesplit.Splitter{Rounding: cfg.RoundingMode},
			Types:    types,
		},
		Lock:    lock.Locker{R: redisClient, RetryBackoff: 50 * time.Millisecond},
		LockTTL: cfg.RepriceLockTTL,
		Logger:  logger,
	}

	asynqOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url for asynq")
	}
	srv := asynq.NewServer(asynqOpt, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues:      map[string]int{cfg.RepriceQueue: 1},
		Logger:      asynqLogger{logger},
	})

	mux := asynq.NewServeMux()
	mux.Handle(reprice.TaskOrderReprice, handler)

	logger.Info().
		Str("queue", cfg.RepriceQueue).
		Int("concurrency", cfg.WorkerConcurrency).
		Msg("reprice worker starting")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped")
	}
}

// asynqLogger adapts zerolog to asynq's logging interface.
type asynqLogger struct {
	l zerolog.Logger
}

func (a asynqLogger) Debug(args ...interface{}) { a.l.Debug().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Info(args ...interface{})  { a.l.Info().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Warn(args ...interface{})  { a.l.Warn().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Error(args ...interface{}) { a.l.Error().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Fatal(args ...interface{}) { a.l.Fatal().Msg(fmt.Sprint(args...)) }
