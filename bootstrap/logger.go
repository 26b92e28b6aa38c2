package bootstrap

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitSlog 安装全局 tint 日志处理器
func InitSlog(env *Env) *slog.Logger {
	timeFormat := time.DateTime
	if env.IsDevelopment() {
		timeFormat = time.Kitchen
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      parseLevel(env.LogLevel),
		TimeFormat: timeFormat,
	}))
	slog.SetDefault(logger)
	return logger
}
