package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeWeb     = "web"
	ModeConsole = "console"

	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel       string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode           string        `yaml:"mode" env:"MODE" env-default:"web"`
	HTTPPort       string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SessionStorage string        `yaml:"session-storage" env:"SESSION_STORAGE" env-default:"memory"`
	SessionTTL     time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	Redis          Redis         `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
