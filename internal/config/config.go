package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Catalog   CatalogConfig
	Assistant AssistantConfig
	Ai        AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type CatalogConfig struct {
	BaseURL         string
	RefreshInterval time.Duration
	RefreshTopic    string
}

type AssistantConfig struct {
	MatchThreshold  float64
	HistoryLimit    int
	SessionTTL      time.Duration
	SessionSweep    time.Duration
	ProviderTimeout time.Duration
}

type AIConfig struct {
	// Primary provider
	LLMProvider   string // "ollama" or "huggingface"
	LLMModel      string
	OllamaBaseURL string

	// Secondary (fallback) provider
	FallbackProvider string
	FallbackModel    string
	HuggingFaceKey   string
	HuggingFaceURL   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/assistant.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Catalog: CatalogConfig{
			BaseURL:         getEnv("CATALOG_BASE_URL", "http://localhost:8080"),
			RefreshInterval: getEnvAsDuration("CATALOG_REFRESH_INTERVAL", 10*time.Minute),
			RefreshTopic:    getEnv("CATALOG_REFRESH_TOPIC", "CATALOG_REFRESH"),
		},
		Assistant: AssistantConfig{
			MatchThreshold:  getEnvAsFloat("MATCH_CONFIDENCE_THRESHOLD", 0.6),
			HistoryLimit:    getEnvAsInt("SESSION_HISTORY_LIMIT", 10),
			SessionTTL:      getEnvAsDuration("SESSION_TTL", 30*time.Minute),
			SessionSweep:    getEnvAsDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
			ProviderTimeout: getEnvAsDuration("PROVIDER_TIMEOUT", 20*time.Second),
		},
		Ai: AIConfig{
			LLMProvider:      getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:         getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			FallbackProvider: getEnv("FALLBACK_LLM_PROVIDER", "huggingface"),
			FallbackModel:    getEnv("FALLBACK_LLM_MODEL", "meta-llama/Llama-3.1-8B-Instruct"),
			HuggingFaceKey:   getEnv("HUGGINGFACE_API_KEY", ""),
			HuggingFaceURL:   getEnv("HUGGINGFACE_BASE_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
