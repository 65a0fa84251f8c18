package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port                string
	CORSAllowOrigin     []string
	DatabaseURL         string
	Env                 string
	EngineVersion       string
	MaxInputBytes       int
	ResultCacheSize     int
	RateLimitToolsRPS   float64
	RateLimitToolsBurst int
}

const (
	defaultMaxInputBytes   = 64 << 10
	defaultResultCacheSize = 512
	defaultToolsRPS        = 2
	defaultToolsBurst      = 10
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:                getEnv("PORT", "8080"),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:         dbURL,
		Env:                 env,
		EngineVersion:       getEnv("ENGINE_VERSION", "heuristic-v1"),
		MaxInputBytes:       getEnvInt("MAX_INPUT_BYTES", defaultMaxInputBytes),
		ResultCacheSize:     getEnvInt("RESULT_CACHE_SIZE", defaultResultCacheSize),
		RateLimitToolsRPS:   getEnvFloat("RATE_LIMIT_TOOLS_RPS", defaultToolsRPS),
		RateLimitToolsBurst: getEnvInt("RATE_LIMIT_TOOLS_BURST", defaultToolsBurst),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("config: ignoring invalid %s=%q", key, raw)
		return def
	}
	return v
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("config: ignoring invalid %s=%q", key, raw)
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
