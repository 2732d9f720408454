package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env-default:"info"`
	Board     Board  `yaml:"board"`
	Rule      string `yaml:"rule" env-default:"four-block-one"`
	Redis     Redis  `yaml:"redis"`
	MatchFile string `yaml:"match-file"`
}

type Board struct {
	Height          int `yaml:"height" env-default:"1000"`
	Width           int `yaml:"width" env-default:"1000"`
	TicTacToeHeight int `yaml:"tic-tac-toe-height" env-default:"3"`
	TicTacToeWidth  int `yaml:"tic-tac-toe-width" env-default:"3"`
}

type Redis struct {
	Enabled    bool          `yaml:"enabled" env-default:"false"`
	Host       string        `yaml:"host" env-default:"localhost"`
	Port       string        `yaml:"port" env-default:"6379"`
	OutcomeTTL time.Duration `yaml:"outcome-ttl" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
