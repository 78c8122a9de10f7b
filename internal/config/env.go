package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL  string
	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string
	JWTSecret    string
	GenModel     string
	GeminiKeys   []string
	Port         string
}

// LoadConfig loads the environment variables and returns config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		AwsAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey: getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:    getEnv("AWS_REGION", "us-east-2"),
		BucketName:   getEnv("BUCKET_NAME", "resumely-docs"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		GenModel:     getEnv("GEN_MODEL", "gemini-1.5-flash"),
		GeminiKeys:   loadGeminiKeys(),
		Port:         getEnv("PORT", "8080"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	return cfg
}

// loadGeminiKeys collects GEMINI_API_KEY_1..GEMINI_API_KEY_19 plus the single
// GEMINI_API_KEY form. The single key is skipped when a numbered slot already
// holds it. An empty slice is valid: the parser then runs in text-only mode.
func loadGeminiKeys() []string {
	var keys []string
	for i := 1; i < 20; i++ {
		if key := getEnv(fmt.Sprintf("GEMINI_API_KEY_%d", i), ""); key != "" {
			keys = append(keys, key)
		}
	}

	if single := getEnv("GEMINI_API_KEY", ""); single != "" {
		dup := false
		for _, k := range keys {
			if k == single {
				dup = true
				break
			}
		}
		if !dup {
			keys = append(keys, single)
		}
	}

	return keys
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
