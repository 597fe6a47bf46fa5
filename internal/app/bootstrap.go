package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pawhaven/internal/config"
	"github.com/pawhaven/internal/logger"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/provider"
	"github.com/pawhaven/internal/router"
	"github.com/pawhaven/internal/telemetry"
	"github.com/pawhaven/internal/worker"

	"gorm.io/gorm"
)

// 默认管理员账号通过环境变量注入
const (
	envDefaultAdminUsername = "PH_DEFAULT_ADMIN_USERNAME"
	envDefaultAdminPassword = "PH_DEFAULT_ADMIN_PASSWORD"
)

// OpenDatabase 打开数据库并完成迁移与默认管理员初始化
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Server.Mode == "debug")
	if err != nil {
		return nil, fmt.Errorf("open database failed: %w", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		_ = models.CloseDB(db)
		return nil, fmt.Errorf("migrate database failed: %w", err)
	}

	password := os.Getenv(envDefaultAdminPassword)
	if cfg.Server.Mode == "release" && password == "" {
		logger.Warnw("default_admin_skipped", "reason", "password_not_set", "env", envDefaultAdminPassword)
	} else if err := models.InitDefaultAdmin(db, os.Getenv(envDefaultAdminUsername), password); err != nil {
		logger.Warnw("default_admin_init_failed", "error", err)
	}
	return db, nil
}

// BuildRunner 构建服务运行器，db 的关闭交给 Runner
func BuildRunner(cfg *config.Config, db *gorm.DB, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if !ValidMode(mode) {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	container, err := provider.NewContainer(cfg, db)
	if err != nil {
		return nil, err
	}

	var services []Service
	var tracer *telemetry.Provider
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		var opts []HTTPServiceOption
		if cfg.Telemetry.Enabled {
			tracer, err = telemetry.Setup(context.Background(), cfg.Telemetry)
			if err != nil {
				_ = container.Close()
				return nil, err
			}
			opts = append(opts, WithTracing(telemetry.ServiceName(cfg.Telemetry)))
			logger.Infow("telemetry_enabled", "endpoint", cfg.Telemetry.Endpoint, "service", telemetry.ServiceName(cfg.Telemetry))
		}
		services = append(services, NewHTTPService(cfg.Server.Host+":"+cfg.Server.Port, engine, opts...))
	}

	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			_ = shutdownTracer(tracer)
			_ = container.Close()
			return nil, err
		}
		services = append(services, workerService)
	} else if mode == ModeAll {
		logger.Infow("worker_skipped", "reason", "queue_disabled")
	}

	runner := NewRunner(services...)
	runner.OnShutdown("database", func() error { return models.CloseDB(db) })
	runner.OnShutdown("container", container.Close)
	if tracer != nil {
		runner.OnShutdown("telemetry", func() error { return shutdownTracer(tracer) })
	}
	return runner, nil
}

func shutdownTracer(tracer *telemetry.Provider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return tracer.Shutdown(ctx)
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	db, err := OpenDatabase(opts.Config)
	if err != nil {
		return err
	}
	runner, err := BuildRunner(opts.Config, db, opts.Mode)
	if err != nil {
		_ = models.CloseDB(db)
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Host+":"+opts.Config.Server.Port, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
