package app

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/shrimpsizemoose/trekker/logger"
)

type Config struct {
	Server struct {
		Port string `toml:"port"`
	} `toml:"server"`

	Auth struct {
		BcryptCost int `toml:"bcrypt_cost"`
	} `toml:"auth"`

	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
		// ReseedOnStart wipes users, assignments and topics and re-inserts
		// the topic seed on every start. Data does not survive restarts
		// while this is on.
		ReseedOnStart bool `toml:"reseed_on_start"`
	} `toml:"database"`

	Uploads struct {
		Dir string `toml:"dir"`
	} `toml:"uploads"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :9999")
	}

	if config.Auth.BcryptCost < bcrypt.MinCost {
		config.Auth.BcryptCost = 12
	}
	if config.Database.MigrationsDir == "" {
		config.Database.MigrationsDir = "./migrations"
	}
	if config.Uploads.Dir == "" {
		config.Uploads.Dir = "./uploads"
	}

	logger.Debug.Printf("Loaded database config: dsn=%s reseed_on_start=%v",
		config.Database.DSN, config.Database.ReseedOnStart)

	return &config, nil
}
