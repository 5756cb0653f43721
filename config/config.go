package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Defaults applied when a value is absent from both the env file and the
// environment.
const (
	DefaultPort                  = "8080"
	DefaultAccessTokenExpiryMin  = 30
	DefaultRefreshTokenExpiryMin = 43200 // 30 days
)

type Config struct {
	Env               string
	Port              string
	DBURL             string
	AccessTokenSecret string
	AccessExpiryMin   int
	RefreshExpiryMin  int
	RedisAddr         string
}

// Load reads config/.env.dev or config/.env.prod depending on ENV, with
// environment variables taking precedence over file values. Missing required
// keys are fatal.
func Load() *Config {
	v := viper.New()

	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin)
	v.SetDefault("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin)
	v.AutomaticEnv()

	env := v.GetString("ENV")
	suffix := "dev"
	if strings.HasPrefix(env, "prod") {
		suffix = "prod"
	}

	v.SetConfigFile("config/.env." + suffix)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("config file not loaded, relying on environment: %v", err)
	}

	cfg := &Config{
		Env:               env,
		Port:              v.GetString("PORT"),
		DBURL:             v.GetString("DB_URL"),
		AccessTokenSecret: v.GetString("ACCESS_TOKEN_SECRET"),
		AccessExpiryMin:   v.GetInt("ACCESS_TOKEN_EXPIRY"),
		RefreshExpiryMin:  v.GetInt("REFRESH_TOKEN_EXPIRY"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
	}

	requireValue("DB_URL", cfg.DBURL)
	requireValue("ACCESS_TOKEN_SECRET", cfg.AccessTokenSecret)

	return cfg
}

func requireValue(key, value string) {
	if value == "" {
		log.Fatalf("Missing required config: %s", key)
	}
}
