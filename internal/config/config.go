// Package config loads runtime settings from the environment, with .env
// support for local development.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Provider selects the generation backend: "gemini", "openai" or "fake".
	Provider string
	Env      string
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
}

type GeminiConfig struct {
	TextModel  string
	ImageModel string
	RPS        float64
	Burst      int
}

type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Provider: firstNonEmpty(strings.TrimSpace(os.Getenv("GENERATION_PROVIDER")), "gemini"),
		Env:      env,
		Gemini: GeminiConfig{
			TextModel:  firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_TEXT_MODEL")), "gemini-2.5-flash"),
			ImageModel: firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_IMAGE_MODEL")), "imagen-3.0-generate-002"),
			RPS:        envFloat("GEMINI_RPS", 0),
			Burst:      envInt("GEMINI_BURST", 1),
		},
		OpenAI: OpenAIConfig{
			APIKey:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
			BaseURL:    strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
			TextModel:  firstNonEmpty(strings.TrimSpace(os.Getenv("OPENAI_TEXT_MODEL")), "gpt-4o"),
			ImageModel: firstNonEmpty(strings.TrimSpace(os.Getenv("OPENAI_IMAGE_MODEL")), "dall-e-3"),
		},
	}, nil
}

func envFloat(key string, fallback float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
