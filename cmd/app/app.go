package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/bingo-api/internal/api"
	"github.com/vietanh2810/bingo-api/internal/cache"
	"github.com/vietanh2810/bingo-api/internal/config"
	"github.com/vietanh2810/bingo-api/internal/db"
	"github.com/vietanh2810/bingo-api/internal/logger"
	"github.com/vietanh2810/bingo-api/internal/repository/dao"
	"github.com/vietanh2810/bingo-api/internal/service"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	if err = logger.SetLevel(conf.API.LogLevel); err != nil {
		return fmt.Errorf("failed to set log level -> %w", err)
	}

	config.Watch(configPath, func(c *config.AppConfig, err error) {
		if err != nil {
			zap.L().Warn("config reload failed", zap.Error(err))
			return
		}
		if err = logger.SetLevel(c.API.LogLevel); err != nil {
			zap.L().Warn("config reload: bad log level", zap.Error(err))
			return
		}
		zap.L().Info("config reloaded", zap.String("log_level", c.API.LogLevel))
	})

	repos, err := openRepositories(conf)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var sessionCache service.SessionCache
	if conf.Redis.URL != "" {
		c, err := cache.NewSessionCache(ctx, conf.Redis.URL, time.Duration(conf.Redis.TTLSeconds)*time.Second)
		if err != nil {
			return fmt.Errorf("failed to initialize redis -> %w", err)
		}
		defer c.Close()
		sessionCache = c
	}

	s := api.NewServer(conf, repos, sessionCache)
	if err = s.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed data -> %w", err)
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr), zap.String("storage", conf.Storage.Driver))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func openRepositories(conf *config.AppConfig) (api.Repositories, error) {
	if conf.Storage.Driver == config.StorageMemory {
		return api.NewMemoryRepositories(), nil
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	var err error
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return api.Repositories{}, fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return api.Repositories{}, fmt.Errorf("failed to migrate tables -> %w", err)
	}

	return api.NewPostgresRepositories(postgresDB), nil
}
