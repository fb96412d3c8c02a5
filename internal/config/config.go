package config

import (
	"log/slog"

	"github.com/joho/godotenv"

	pkgconfig "github.com/Skotchmaster/pharmacy/pkg/config"
)

type Config struct {
	pkgconfig.Config

	StrictOrderTransitions bool
	AutoMigrate            bool
	SecureCookies          bool
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info("no .env file, using process environment", "error", err)
	}

	cfg := &Config{
		Config:                 pkgconfig.Load(),
		StrictOrderTransitions: pkgconfig.EnvBoolDefault("ORDER_STRICT_TRANSITIONS", false),
		AutoMigrate:            pkgconfig.EnvBoolDefault("DB_AUTO_MIGRATE", true),
		SecureCookies:          pkgconfig.EnvBoolDefault("SECURE_COOKIES", false),
	}

	pkgconfig.MustHave(
		pkgconfig.Required{Env: "DATABASE_URL", Set: cfg.DatabaseURL != ""},
		pkgconfig.Required{Env: "JWT_SECRET", Set: len(cfg.JWTSecret) > 0},
	)
	return cfg
}
