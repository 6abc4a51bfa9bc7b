package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig
	Forum ForumConfig
	Model ModelConfig
	Keys  APIKeys
	Auth  AuthConfig
	Ai    AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type ForumConfig struct {
	FilePath string
	// Retained posts; oldest are evicted beyond this.
	MaxPosts int
	// Posts shown per page request.
	PageSize int
}

type ModelConfig struct {
	// Path to the exported ONNX crop classifier.
	ClassifierPath string
	// Path to the JSON file with both fitted scaler parameter sets.
	ScalerParamsPath string
}

type APIKeys struct {
	OpenWeather string
	HuggingFace string
	FirebaseAPI string
}

type AuthConfig struct {
	JWTSecret string
	// Token lifetime in hours.
	TokenTTLHours int
}

type AIConfig struct {
	LLMProvider string // "huggingface" or "ollama"
	LLMModel    string
	LLMBaseURL  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Forum: ForumConfig{
			FilePath: getEnv("FORUM_FILE_PATH", "forum_data.json"),
			MaxPosts: getEnvAsInt("FORUM_MAX_POSTS", 100),
			PageSize: getEnvAsInt("FORUM_PAGE_SIZE", 15),
		},
		Model: ModelConfig{
			ClassifierPath:   getEnv("CROP_MODEL_PATH", "model.onnx"),
			ScalerParamsPath: getEnv("SCALER_PARAMS_PATH", "scaler_params.json"),
		},
		Keys: APIKeys{
			OpenWeather: getEnv("OPENWEATHER_API_KEY", ""),
			HuggingFace: getEnv("HUGGINGFACE_API_TOKEN", ""),
			FirebaseAPI: getEnv("FIREBASE_API_KEY", ""),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTLHours: getEnvAsInt("JWT_TTL_HOURS", 24),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "huggingface"),
			LLMModel:    getEnv("LLM_MODEL", "mistralai/Mistral-Nemo-Instruct-2407"),
			LLMBaseURL:  getEnv("LLM_BASE_URL", ""),
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
