package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/saadkhan011/calcrew-frontend/internal/config"
	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
)

type FactoryResult struct {
	Driver string
	Store  checkout.Store
	SQL    *SQL                        // set for the mysql driver
	Ping   func(context.Context) error // nil for the memory driver
	Close  func() error
}

func FromConfig(ctx context.Context, cfg config.Config) (FactoryResult, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case "", "memory":
		return FactoryResult{Driver: "memory", Store: NewMemory(cfg.SessionTTL), Close: noop}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return FactoryResult{}, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		return FactoryResult{Driver: "redis", Store: NewRedis(client, cfg.SessionTTL), Close: client.Close,
			Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() }}, nil

	case "mysql":
		db, err := gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
		if err != nil {
			return FactoryResult{}, fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return FactoryResult{}, err
		}
		s := NewSQL(db, cfg.SessionTTL)
		return FactoryResult{Driver: "mysql", Store: s, SQL: s, Close: sqlDB.Close, Ping: sqlDB.PingContext}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}
}
