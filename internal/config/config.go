package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/wellingtonshopee/analitics/internal/constants"
)

// Config holds everything read from the environment at startup.
type Config struct {
	AppEnv string
	Port   string

	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	UseRedisCache bool

	// Facility the pool/sweeper destination hubs are compared against.
	TargetHub string

	// When true, divergence keeps one classification per tracking number
	// instead of one row per qualifying sweeper scan.
	DivergenceDedupe bool

	ViaCEPBaseURL string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:           getenv("APP_ENV", "development"),
		Port:             getenv("PORT", "8080"),
		PGHost:           getenv("PG_HOST", "localhost"),
		PGPort:           getenv("PG_PORT", "5432"),
		PGUser:           getenv("PG_USER", "postgres"),
		PGPassword:       getenv("PG_PASSWORD", ""),
		PGDatabase:       getenv("PG_DB", "analitics"),
		RedisHost:        getenv("REDIS_HOST", "localhost"),
		RedisPort:        getenv("REDIS_PORT", "6379"),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		UseRedisCache:    getbool("USE_REDIS_CACHE", false),
		TargetHub:        getenv("TARGET_HUB", constants.DefaultTargetHub),
		DivergenceDedupe: getbool("DIVERGENCE_DEDUPE", false),
		ViaCEPBaseURL:    getenv("VIACEP_BASE_URL", "https://viacep.com.br/ws"),
	}
}

// PostgresDSN builds the connection string shared by sqlx and GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
