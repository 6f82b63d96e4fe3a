package server

import (
	"os"
	"strconv"
)

// Config holds the agent service settings, read from the environment.
type Config struct {
	Host        string
	Port        int
	DatabaseURL string
	// VoiceToken is handed to clients for the streaming transcription
	// service. Empty disables the voice endpoint.
	VoiceToken string
}

func LoadConfig() Config {
	return Config{
		Host:        getEnv("HOST", "0.0.0.0"),
		Port:        getEnvInt("PORT", 8000),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		VoiceToken:  os.Getenv("VOICE_ACCESS_TOKEN"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
