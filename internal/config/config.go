package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"resumelens/resume-extractor/internal/models"
)

type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	OCR    OCRConfig
	Upload UploadConfig
	Schema SchemaConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey string
	// Models is the prioritized candidate list tried in order when a model
	// is unavailable.
	Models  []string
	Timeout time.Duration
}

type OCRConfig struct {
	TesseractPath string
	Language      string
	Timeout       time.Duration
}

type UploadConfig struct {
	MaxFileSize int64
}

type SchemaConfig struct {
	SkillsVariant models.SkillsVariant
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5050"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Models:  getEnvAsSlice("GEMINI_MODELS", "gemini-2.5-flash,gemini-2.0-flash,gemini-1.5-flash"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", "60s"),
		},
		OCR: OCRConfig{
			TesseractPath: getEnv("TESSERACT_PATH", "tesseract"),
			Language:      getEnv("OCR_LANGUAGE", "eng"),
			Timeout:       getEnvAsDuration("OCR_TIMEOUT", "30s"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Schema: SchemaConfig{
			SkillsVariant: skillsVariant(getEnv("SKILLS_SCHEMA", "flat")),
		},
	}
}

// Validate reports configuration that would make the service unusable.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if len(c.Gemini.Models) == 0 {
		return fmt.Errorf("GEMINI_MODELS must list at least one model")
	}
	return nil
}

func skillsVariant(value string) models.SkillsVariant {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "categorized":
		return models.SkillsCategorized
	default:
		return models.SkillsFlat
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue string) []string {
	valueStr := getEnv(key, defaultValue)

	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
