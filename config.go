package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all tunables consumed by the extraction pipeline and server.
type Config struct {
	// SimilarityThreshold is used by the similarity-search utility only,
	// never by the comparison grouping. Clamped to [0.5, 1.0].
	SimilarityThreshold float64

	// PBFDir is the folder scanned for supplier price-list PDFs.
	PBFDir string

	ListenAddr string

	// Meilisearch is optional; indexing is skipped when MeiliURL is empty.
	MeiliURL    string
	MeiliAPIKey string

	// DualTableMode enables the side-by-side table split on each page.
	DualTableMode bool
}

// LoadConfig reads the .env file (if present) and environment variables.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg := &Config{
		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.8),
		PBFDir:              getEnv("PBF_DIR", "pbf"),
		ListenAddr:          getEnv("LISTEN_ADDR", ":50051"),
		MeiliURL:            getEnv("MEILI_URL", ""),
		MeiliAPIKey:         getEnv("MEILI_API_KEY", ""),
		DualTableMode:       getEnvBool("DUAL_TABLE_MODE", true),
	}

	if cfg.SimilarityThreshold < 0.5 {
		cfg.SimilarityThreshold = 0.5
	}
	if cfg.SimilarityThreshold > 1.0 {
		cfg.SimilarityThreshold = 1.0
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}
