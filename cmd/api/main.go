package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stewartad1/RapidEdge/config"
	"github.com/stewartad1/RapidEdge/internal/bootstrap"
	cronjob "github.com/stewartad1/RapidEdge/internal/dxf/cron"
	"github.com/stewartad1/RapidEdge/internal/dxf/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	deps := bootstrap.RouterDeps{
		ServiceName: "rapidedge-api",
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit:   cfg.Server.RateLimit,
		RateBurst:   cfg.Server.RateBurst,
	}

	if cfg.Database.DSN != "" {
		pool, err := bootstrap.OpenDB(context.Background(), bootstrap.DBOptions{
			DSN:      cfg.Database.DSN,
			MaxConns: int32(cfg.Database.MaxConns),
			MinConns: int32(cfg.Database.MinConns),
		})
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
		deps.DB = pool

		retention := time.Duration(cfg.Database.RetentionDays) * 24 * time.Hour
		cronjob.NewScheduler(repository.NewHistoryRepository(pool), retention).Start()
	} else {
		log.Println("DB_DSN not set; measurement history disabled")
	}

	if cfg.Redis.Addr != "" {
		deps.Cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	} else {
		log.Println("REDIS_ADDR not set; report cache disabled")
	}

	r := bootstrap.BuildRouter(deps)
	log.Printf("listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
