package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Pipeline PipelineConfig
	Partner  PartnerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey            string
	Model             string
	RequestsPerSecond float64
}

type StorageConfig struct {
	MaxFileSize int64
}

type PipelineConfig struct {
	BatchSize int
}

// PartnerConfig describes the one profile host whose document URLs have to be
// resolved through a lookup endpoint before fetching.
type PartnerConfig struct {
	ProfileHost string
	LookupURL   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:            getEnv("GEMINI_API_KEY", ""),
			Model:             getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			RequestsPerSecond: getEnvAsFloat("GEMINI_RPS", 2),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Pipeline: PipelineConfig{
			BatchSize: getEnvAsInt("BATCH_SIZE", 5),
		},
		Partner: PartnerConfig{
			ProfileHost: getEnv("PARTNER_PROFILE_HOST", "profiles.talenthub.io"),
			LookupURL:   getEnv("PARTNER_LOOKUP_URL", "https://api.talenthub.io/v1/profiles"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}
