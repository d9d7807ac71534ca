package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-InterviewScheduler/internal/config"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/logger"
	"github.com/m04kA/SMC-InterviewScheduler/pkg/metrics"
)

// app общие зависимости команд: конфиг, логгер, база и метрики
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	sqlDB   *sql.DB
	db      *dbmetrics.DB
	metrics *metrics.Metrics
	stopCh  chan struct{}
}

func bootstrap(ctx context.Context, configPath string) (*app, error) {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Configuration loaded from %s", configPath)

	a := &app{cfg: cfg, log: log, stopCh: make(chan struct{})}

	// Метрики (если включены)
	var collector dbmetrics.MetricsCollector
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		collector = a.metrics
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		a.close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.sqlDB = sqlDB

	// Настраиваем connection pool
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := sqlDB.PingContext(ctx); err != nil {
		a.close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как обычный *sql.DB
	a.db = dbmetrics.WrapWithDefault(sqlDB, collector, cfg.Metrics.ServiceName, a.stopCh)

	return a, nil
}

func (a *app) close() {
	close(a.stopCh)
	if a.sqlDB != nil {
		if err := a.sqlDB.Close(); err != nil {
			a.log.Error("Failed to close database: %v", err)
		}
	}
	_ = a.log.Close()
}
