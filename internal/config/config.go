package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported catalog store backends.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig selects the catalog store. DSN is used by sqlite,
// URI and Name by mongo.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

// JWTConfig holds the key used to verify bearer tokens. Tokens are issued
// elsewhere; this service only reads the user id out of them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// CatalogConfig holds catalog seed data.
type CatalogConfig struct {
	// Categories are created at startup if missing.
	Categories []string `mapstructure:"categories"`
}

// LoadConfig reads configuration from path/config.yaml and environment
// variables (server.address -> SERVER_ADDRESS).
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "data/exercise_catalog.db")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "exercise_catalog")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.url_expiry", "15m")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("catalog.categories", []string{})

	err = v.ReadInConfig()
	// A missing file is fine: defaults and env vars still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	return config, config.Validate()
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverSQLite, DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("database.driver must be %q or %q, got %q", DriverSQLite, DriverMongo, c.Database.Driver))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	return errors.Join(errs...)
}
