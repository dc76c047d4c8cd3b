package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	FirebaseApiKey  string
	Environment     string

	// External collaborators
	MapboxAccessToken string
	GoogleMapsApiKey  string
	VerifierBaseURL   string
	VerifierScope     string

	// Rate limit for the verify endpoint (requests per minute per IP)
	VerifyRateLimit int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		FirebaseProject:   getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:    getEnv("FIREBASE_API_KEY", ""),
		Environment:       getEnv("ENVIRONMENT", "development"),
		MapboxAccessToken: getEnv("MAPBOX_ACCESS_TOKEN", ""),
		GoogleMapsApiKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
		VerifierBaseURL:   getEnv("VERIFIER_BASE_URL", "https://playground.self.xyz"),
		VerifierScope:     getEnv("VERIFIER_SCOPE", "self-playground"),
		VerifyRateLimit:   getEnvAsInt("VERIFY_RATE_LIMIT", 10),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
