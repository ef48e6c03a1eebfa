package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/logger"

	"go.uber.org/zap"
)

// Mode 决定进程内启动哪些服务
type Mode string

const (
	ModeAll    Mode = "all"
	ModeAPI    Mode = "api"
	ModeWorker Mode = "worker"
)

const defaultShutdownTimeout = 15 * time.Second

// ParseMode 空串视为 all
func ParseMode(raw string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected all, api or worker)", raw)
	}
}

func (m Mode) api() bool    { return m == ModeAll || m == ModeAPI }
func (m Mode) worker() bool { return m == ModeAll || m == ModeWorker }

// Options 应用启动选项
type Options struct {
	Config  *config.Config
	Logger  *zap.SugaredLogger
	Signals []os.Signal
	Mode    Mode
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.Mode == "" {
		o.Mode = ModeAll
	}
	return o
}

func (o Options) shutdownTimeout() time.Duration {
	if o.Config != nil && o.Config.Server.ShutdownTimeout > 0 {
		return o.Config.Server.ShutdownTimeout
	}
	return defaultShutdownTimeout
}
