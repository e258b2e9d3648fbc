package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env-default:"9090"`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
}

// Storage - where the session keeps its save slot and how saves are read back.
type Storage struct {
	Kind   string `yaml:"kind" env-default:"file"`
	Slot   string `yaml:"slot" env-default:"save"`
	Dir    string `yaml:"dir" env-default:"."`
	Strict bool   `yaml:"strict" env-default:"false"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
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
