// config/logger.go
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

// InitLogger configures the shared logger. The terminal UI owns stdout, so
// output goes to a rotating file unless logFile is "stderr".
func InitLogger(level, logFile string) {
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Logger.SetLevel(parsed)

	switch strings.TrimSpace(logFile) {
	case "", "stderr":
		Logger.SetOutput(os.Stderr)
	default:
		if dir := filepath.Dir(logFile); dir != "" {
			_ = os.MkdirAll(dir, 0o755)
		}
		Logger.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}
}
