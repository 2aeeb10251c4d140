package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds client settings. Credentials live separately in the session
// file; this is tunables only.
type Config struct {
	ServerURL    string
	PollInterval time.Duration
	LogFile      string
	CacheFile    string
	ConfigDir    string
}

// Load reads settings from ~/.config/banter/config.yaml, overridden by
// BANTER_* environment variables. A local .env file is applied first if
// present.
func Load() (Config, error) {
	_ = godotenv.Load()

	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("BANTER")
	v.AutomaticEnv()

	v.SetDefault("server_url", "")
	v.SetDefault("poll_interval", "4s")
	v.SetDefault("log_file", filepath.Join(dir, "banter.log"))
	v.SetDefault("cache_file", filepath.Join(dir, "cache.db"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		ServerURL:    v.GetString("server_url"),
		PollInterval: v.GetDuration("poll_interval"),
		LogFile:      v.GetString("log_file"),
		CacheFile:    v.GetString("cache_file"),
		ConfigDir:    dir,
	}, nil
}

// Dir returns the banter config directory, creating it if needed.
func Dir() (string, error) {
	if override := os.Getenv("BANTER_CONFIG_DIR"); override != "" {
		return override, os.MkdirAll(override, 0o755)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "banter")
	return dir, os.MkdirAll(dir, 0o755)
}
