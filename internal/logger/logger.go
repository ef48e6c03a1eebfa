// Package logger 进程级 zap 日志。debug 模式输出彩色控制台，其余模式写 JSON 滚动文件，
// error 及以上同时输出到 stderr 方便容器采集。
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogDirName   = "logs"
	defaultLogFilename  = "foodgram.log"
	defaultMaxSizeMB    = 100
	defaultMaxBackups   = 7
	defaultMaxAgeDays   = 30
	modeDebug           = "debug"
	fileMode            = 0o644
	dirMode             = 0o755
	callerSkipForHelper = 1
)

// Options 日志输出配置
type Options struct {
	Level      string // 为空时 debug 模式取 debug，其余取 info
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var global atomic.Pointer[zap.Logger]

// Init 创建并安装全局日志
func Init(mode string, options Options) *zap.Logger {
	l := New(mode, options)
	global.Store(l)
	zap.ReplaceGlobals(l)
	return l
}

// New 按模式创建日志实例，文件不可写时退回 stdout
func New(mode string, options Options) *zap.Logger {
	debug := strings.EqualFold(strings.TrimSpace(mode), modeDebug)
	level := zap.NewAtomicLevelAt(resolveLevel(debug, options.Level))
	enc := encoderConfig()

	if debug {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return newLogger(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stdout), level))
	}

	jsonEncoder := zapcore.NewJSONEncoder(enc)
	sink, err := fileSink(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v, writing to stdout\n", err)
		return newLogger(zapcore.NewCore(jsonEncoder, zapcore.Lock(os.Stdout), level))
	}
	return newLogger(zapcore.NewTee(
		zapcore.NewCore(jsonEncoder, sink, level),
		zapcore.NewCore(jsonEncoder, zapcore.Lock(os.Stderr), zap.ErrorLevel),
	))
}

func newLogger(core zapcore.Core) *zap.Logger {
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(callerSkipForHelper))
}

// Z 当前全局日志，未初始化时为 info 级控制台输出
func Z() *zap.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	l := New(modeDebug, Options{Level: "info"})
	if global.CompareAndSwap(nil, l) {
		return l
	}
	return global.Load()
}

// S 全局 SugaredLogger
func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW 带固定字段的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	return S().With(kv...)
}

// StdLogger 供只接受 *log.Logger 的组件（gorm、cmd 入口）使用
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

func Debugw(msg string, kv ...interface{}) { S().Debugw(msg, kv...) }

func Infow(msg string, kv ...interface{}) { S().Infow(msg, kv...) }

func Warnw(msg string, kv ...interface{}) { S().Warnw(msg, kv...) }

func Errorw(msg string, kv ...interface{}) { S().Errorw(msg, kv...) }

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

func resolveLevel(debug bool, raw string) zapcore.Level {
	if level, err := zapcore.ParseLevel(strings.TrimSpace(raw)); err == nil && strings.TrimSpace(raw) != "" {
		return level
	}
	if debug {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

func fileSink(options Options) (zapcore.WriteSyncer, error) {
	path, err := resolveLogFilePath(options)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(options.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: orDefault(options.MaxBackups, defaultMaxBackups),
		MaxAge:     orDefault(options.MaxAgeDays, defaultMaxAgeDays),
		Compress:   options.Compress,
	}), nil
}

// resolveLogFilePath 目录为空时使用工作目录下的 logs，并提前确认文件可写
func resolveLogFilePath(options Options) (string, error) {
	dir := strings.TrimSpace(options.Dir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve workdir: %w", err)
		}
		dir = filepath.Join(wd, defaultLogDirName)
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	name := strings.TrimSpace(options.Filename)
	if name == "" {
		name = defaultLogFilename
	}
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}
	return path, f.Close()
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
