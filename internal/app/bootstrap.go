package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/i18n"
	"github.com/foodgram-next/internal/provider"
	"github.com/foodgram-next/internal/router"
	"github.com/foodgram-next/internal/shoppinglist"
	"github.com/foodgram-next/internal/validation"
	"github.com/foodgram-next/internal/worker"
)

var errNilConfig = errors.New("config is nil")

// Prepare 初始化进程级依赖：校验器、默认语言、导出字体、上传目录
func Prepare(cfg *config.Config) error {
	if cfg == nil {
		return errNilConfig
	}
	if err := validation.Register(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}
	if locale := strings.TrimSpace(cfg.Export.DefaultLocale); locale != "" {
		i18n.SetDefaultLocale(locale)
	}
	if err := shoppinglist.LoadFont(cfg.Export.FontPath); err != nil {
		return fmt.Errorf("load export font: %w", err)
	}
	if dir := strings.TrimSpace(cfg.Upload.Dir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create upload dir: %w", err)
		}
	}
	return nil
}

// buildServices 按启动模式组装 HTTP 与 Worker 服务
func buildServices(opts Options, container *provider.Container) ([]Service, error) {
	cfg := opts.Config
	var services []Service
	if opts.Mode.api() {
		services = append(services, NewHTTPService(cfg.Server, router.SetupRouter(cfg, container)))
	}
	if opts.Mode.worker() {
		switch {
		case cfg.Queue.Enabled:
			svc, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				return nil, err
			}
			services = append(services, svc)
		case opts.Mode == ModeWorker:
			return nil, errors.New("worker mode requires queue.enabled")
		default:
			opts.Logger.Warnw("worker_skipped_queue_disabled")
		}
	}
	return services, nil
}

// Run 应用启动入口，阻塞到收到信号或某个服务退出
func Run(opts Options) error {
	opts = opts.withDefaults()
	if opts.Config == nil {
		return errNilConfig
	}
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return err
	}
	if err := Prepare(opts.Config); err != nil {
		return err
	}

	container, err := provider.NewContainer(opts.Config)
	if err != nil {
		return err
	}
	defer container.Close()

	services, err := buildServices(opts, container)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
	}

	opts.Logger.Infow("app_start",
		"addr", opts.Config.Server.Addr(),
		"mode", opts.Mode,
		"queue_enabled", opts.Config.Queue.Enabled,
	)
	return NewRunner(services...).Run(ctx, opts.shutdownTimeout(), opts.Logger)
}
