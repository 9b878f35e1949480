package cli

import (
	"log/slog"
	"os"

	"hermannm.dev/devlog"
)

var logLevel slog.LevelVar

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stderr, &devlog.Options{
		Level: &logLevel,
	})))
}

func setLogLevel(level slog.Level) {
	logLevel.Set(level)
}
