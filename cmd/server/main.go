package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/foodgram-next/internal/app"
	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"
	"github.com/foodgram-next/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径，默认在 . ../ ./etc 下查找 config.yml")
	modeFlag := flag.String("mode", string(app.ModeAll), "启动模式: all, api, worker")
	flag.Parse()

	if err := run(*configPath, *modeFlag); err != nil {
		logger.Errorw("server_exit", "error", err)
		_ = logger.Z().Sync()
		os.Exit(1)
	}
}

func run(configPath, modeFlag string) error {
	mode, err := app.ParseMode(modeFlag)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer func() { _ = logger.Z().Sync() }()

	if cfg.JWT.Weak() {
		logger.Warnw("jwt_secret_weak", "mode", cfg.Server.Mode)
	}
	if cfg.Server.Release() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := models.InitDB(cfg.Database); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	seedDefaultStaff(cfg)

	return app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	})
}

// seedDefaultStaff 生产环境未显式提供密码时不创建默认员工
func seedDefaultStaff(cfg *config.Config) {
	password := os.Getenv("FG_DEFAULT_STAFF_PASSWORD")
	if cfg.Server.Release() && password == "" {
		logger.Warnw("default_staff_skipped", "reason", "FG_DEFAULT_STAFF_PASSWORD not set")
		return
	}
	if _, err := models.InitDefaultStaff(os.Getenv("FG_DEFAULT_STAFF_EMAIL"), os.Getenv("FG_DEFAULT_STAFF_USERNAME"), password); err != nil {
		logger.Warnw("default_staff_init_failed", "error", err)
	}
}
