package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	RedisURL        string
	PBPBaseURL      string
	CurrentSeason   int
	CacheTTLMinutes int
	RefreshSeconds  int // 0 disables the live refresher
	AllowedOrigins  string
}

func Load() Config {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		PBPBaseURL:      os.Getenv("PBP_BASE_URL"),
		CurrentSeason:   getEnvInt("CURRENT_SEASON", 2024),
		CacheTTLMinutes: getEnvInt("CACHE_TTL_MINUTES", 15),
		RefreshSeconds:  getEnvInt("REFRESH_SECONDS", 0),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
