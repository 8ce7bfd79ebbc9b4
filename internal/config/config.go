package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds every setting of the editor service.
type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Editor  EditorConfig
	Redis   RedisConfig
	Log     LogConfig
	GinMode string `validate:"oneof=debug release test"`
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

type ServerConfig struct {
	Addr            string        `validate:"required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
}

type GeminiConfig struct {
	APIKey string `validate:"required"`
	Model  string `validate:"required"`
}

type EditorConfig struct {
	ProcessTimeout time.Duration `validate:"gt=0"`
	MaxUploadBytes int64         `validate:"gt=0"`
	// FlightTTL must outlive a full service call or a second submission
	// could slip in while the first is still running.
	FlightTTL      time.Duration `validate:"gt=0,gtfield=ProcessTimeout"`
}

// RedisConfig is optional; an empty Addr keeps flight markers in memory.
type RedisConfig struct {
	Addr string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-image-preview"),
		},
		Editor: EditorConfig{
			ProcessTimeout: getEnvDuration("PROCESS_TIMEOUT", 5*time.Minute),
			MaxUploadBytes: getEnvInt64("MAX_UPLOAD_BYTES", 10<<20),
			FlightTTL:      getEnvDuration("FLIGHT_TTL", 10*time.Minute),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		GinMode: getEnv("GIN_MODE", "release"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
