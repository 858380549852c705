package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// ServerConfig holds settings for `arcade serve`.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"ARCADE_ADDRESS" env-default:":23234"`
	HostKeyPath string        `yaml:"host-key-path" env:"ARCADE_HOST_KEY"`
	DBPath      string        `yaml:"db-path" env:"ARCADE_DB" env-default:"~/.arcade/scores.db"`
	IdleTimeout time.Duration `yaml:"idle-timeout" env:"ARCADE_IDLE_TIMEOUT" env-default:"30m"`
	LogLevel    string        `yaml:"log-level" env:"ARCADE_LOG_LEVEL" env-default:"info"`
	Redis       Redis         `yaml:"redis"`
}

// Redis configures the optional leaderboard. An empty Addr disables it.
type Redis struct {
	Addr     string `yaml:"addr" env:"ARCADE_REDIS_ADDR"`
	Password string `yaml:"password" env:"ARCADE_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"ARCADE_REDIS_DB" env-default:"0"`
}

// Enabled reports whether a redis address is configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// LoadServer reads the server config from path (YAML) with ARCADE_* variables
// taking precedence. An empty path reads the environment only.
func LoadServer(path string) (ServerConfig, error) {
	var cfg ServerConfig
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("unable to load server config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads the first .env file found among paths into the process
// environment. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		err := godotenv.Load(p)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}
