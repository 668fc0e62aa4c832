package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Gemini   GeminiConfig
	Model    ModelConfig
	Engine   EngineConfig
	OTEL     OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeminiConfig holds Gemini AI configuration
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// ModelConfig holds the trained model artifact location
type ModelConfig struct {
	ArtifactPath string
}

// EngineConfig holds the recommendation engine policy knobs. The defaults
// mirror the serving policy the model was tuned against; they are exposed as
// configuration rather than constants because the thresholds carry no
// documented rationale of their own.
type EngineConfig struct {
	MinResults          int
	PredictionThreshold float64
	PredictionTopK      int
	RatingWeight        float64
	OverlapWeight       float64
	MaxRecommendations  int
	CacheTTLSeconds     int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "unify"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: time.Duration(getEnvAsInt("GEMINI_TIMEOUT_MS", 15000)) * time.Millisecond,
		},
		Model: ModelConfig{
			ArtifactPath: getEnv("MODEL_ARTIFACT_PATH", "models/accommodation_model.json"),
		},
		Engine: EngineConfig{
			MinResults:          getEnvAsInt("ENGINE_MIN_RESULTS", 2),
			PredictionThreshold: getEnvAsFloat("ENGINE_PREDICTION_THRESHOLD", 0.5),
			PredictionTopK:      getEnvAsInt("ENGINE_PREDICTION_TOP_K", 3),
			RatingWeight:        getEnvAsFloat("ENGINE_RATING_WEIGHT", 0.7),
			OverlapWeight:       getEnvAsFloat("ENGINE_OVERLAP_WEIGHT", 0.3),
			MaxRecommendations:  getEnvAsInt("ENGINE_MAX_RECOMMENDATIONS", 5),
			CacheTTLSeconds:     getEnvAsInt("ENGINE_CACHE_TTL_SECONDS", 600),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "unify-recommendation-engine"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
