package config

import (
	"errors"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/iris-civica/iris-client/pkg/tarantool"
	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL      string           `yaml:"API_BASE_URL"      env:"API_BASE_URL"      env-default:"http://localhost:8000/api/v1"`
	Page            string           `yaml:"PAGE"              env:"PAGE"              env-default:"politicos"`
	LogLevel        string           `yaml:"LOG_LEVEL"         env:"LOG_LEVEL"         env-default:"debug"`
	SalvarHistorico bool             `yaml:"CHAT_SAVE_HISTORY" env:"CHAT_SAVE_HISTORY" env-default:"true"`
	ExportDir       string           `yaml:"CHAT_EXPORT_DIR"   env:"CHAT_EXPORT_DIR"   env-default:"."`
	MaxTokens       int              `yaml:"CHAT_MAX_TOKENS"   env:"CHAT_MAX_TOKENS"   env-default:"512"`
	Temperature     float64          `yaml:"CHAT_TEMPERATURE"  env:"CHAT_TEMPERATURE"  env-default:"0"`
	Tarantool       tarantool.Config `yaml:"TARANTOOL"         env:"TARANTOOL"`
}

func New() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
