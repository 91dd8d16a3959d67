package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

// Config is the typed view over viper keys after Load.
type Config struct {
	Port      string
	LogLevel  string
	SecretKey string

	DBDriver   string // "pgx" (postgres) or "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string // sqlite file, used when DBDriver == "sqlite"
}

// Load reads configs/config.yml and overlays the recognized environment
// variables (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, SECRET_KEY,
// PORT). A missing config file is not an error; env plus defaults is a
// valid deployment.
func Load() (*Config, error) {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")

	viper.SetDefault("port", "8080")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.path", "portal.db")

	bindings := map[string]string{
		"port":        "PORT",
		"secret_key":  "SECRET_KEY",
		"db.host":     "DB_HOST",
		"db.port":     "DB_PORT",
		"db.user":     "DB_USER",
		"db.password": "DB_PASSWORD",
		"db.name":     "DB_NAME",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		Port:       viper.GetString("port"),
		LogLevel:   viper.GetString("log_level"),
		SecretKey:  viper.GetString("secret_key"),
		DBDriver:   viper.GetString("db.driver"),
		DBHost:     viper.GetString("db.host"),
		DBPort:     viper.GetString("db.port"),
		DBUser:     viper.GetString("db.user"),
		DBPassword: viper.GetString("db.password"),
		DBName:     viper.GetString("db.name"),
		DBPath:     viper.GetString("db.path"),
	}, nil
}

// DSN assembles the driver connection string. Postgres credentials go
// through url.UserPassword so special characters in the password survive.
func (c *Config) DSN() string {
	if c.DBDriver == "pgx" {
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(c.DBUser, c.DBPassword),
			Host:   c.DBHost + ":" + c.DBPort,
			Path:   c.DBName,
		}
		return u.String()
	}
	return c.DBPath
}
