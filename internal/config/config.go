package config

import (
	"fmt"
	"log"
	"net/url"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	DBDSN   string `env:"DB_DSN" envDefault:"usersvc.db"` // sqlite file unless it's a postgres URL
	LogFile string `env:"LOG_FILE"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s", cfg.Port, redactDSN(cfg.DBDSN), cfg.LogFile)
	return cfg, nil
}

// redactDSN masks the password in URL-style DSNs so credentials never reach
// the logs. Non-URL DSNs (sqlite files) pass through untouched.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
