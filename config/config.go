package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Settings is the client configuration read from the environment.
type Settings struct {
	APIURL         string        `env:"TASKAI_API_URL" env-default:""`
	LegacyAPIURL   string        `env:"NEXT_PUBLIC_API_URL" env-default:""`
	HTTPTimeout    time.Duration `env:"TASKAI_HTTP_TIMEOUT" env-default:"30s"`
	CredentialPath string        `env:"TASKAI_CREDENTIAL_PATH" env-default:""`
	LogLevel       string        `env:"TASKAI_LOG_LEVEL" env-default:"info"`
	LogFile        string        `env:"TASKAI_LOG_FILE" env-default:""`
	AltScreen      bool          `env:"TASKAI_ALT_SCREEN" env-default:"true"`
}

// Load reads Settings from the environment and fills in derived defaults.
// Call LoadEnv first so values from .env are visible.
func Load() (Settings, error) {
	var s Settings
	if err := cleanenv.ReadEnv(&s); err != nil {
		return Settings{}, fmt.Errorf("read env: %w", err)
	}
	s.APIURL = BaseURL(s)

	if s.HTTPTimeout <= 0 {
		s.HTTPTimeout = DefaultHTTPTimeout
	}
	if strings.TrimSpace(s.CredentialPath) == "" {
		s.CredentialPath = defaultPath(CredentialFileName)
	}
	if strings.TrimSpace(s.LogFile) == "" {
		s.LogFile = defaultPath(LogFileName)
	}
	return s, nil
}

// BaseURL resolves the API base URL: TASKAI_API_URL, then the web client's
// NEXT_PUBLIC_API_URL, then the local default. Trailing slashes are dropped.
func BaseURL(s Settings) string {
	for _, candidate := range []string{s.APIURL, s.LegacyAPIURL} {
		if v := strings.TrimSpace(candidate); v != "" {
			return strings.TrimRight(v, "/")
		}
	}
	return DefaultAPIURL
}

func defaultPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".", "."+AppName, name)
	}
	return filepath.Join(dir, AppName, name)
}
