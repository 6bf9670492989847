package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/selim-create/rejimde-datahub/internal/util"
)

// Config centralises all environment and runtime configuration.
type Config struct {
	Logger *log.Logger

	// Rejimde REST backend base URL, e.g. https://api.rejimde.com/wp-json
	APIBaseURL string

	DatabaseURL string

	// Optional bearer token for authenticated endpoints. When TokenFile is
	// set it wins over Token and is re-read on every request.
	Token     string
	TokenFile string

	// Professionals whose calendars are synced into the local cache.
	ProfessionalIDs []int64

	// Expert slugs whose reviews and public profiles are synced.
	ExpertSlugs []string

	ExportDir string

	AutoMigrate bool
}

// Load builds the Config struct, validating critical env vars.
func Load() *Config {
	logger := util.NewLogger()
	logger.Println("Loading environment configuration...")

	cfg := &Config{
		Logger:      logger,
		APIBaseURL:  strings.TrimRight(getEnvOrFail(logger, "WP_API_URL"), "/"),
		DatabaseURL: getEnvOrFail(logger, "DATABASE_URL"),
		Token:       os.Getenv("REJIMDE_JWT_TOKEN"),
		TokenFile:   os.Getenv("REJIMDE_TOKEN_FILE"),
		AutoMigrate: os.Getenv("AUTO_MIGRATE") == "1",
		ExportDir:   getEnvOrDefault("EXPORT_DIR", "data/exports"),
	}

	ids, err := parseIDListEnv("PROFESSIONAL_IDS")
	if err != nil {
		logger.Fatalf("❌ %v", err)
	}
	cfg.ProfessionalIDs = ids

	cfg.ExpertSlugs = parseListEnv("EXPERT_SLUGS")

	logger.Printf("✅ Loaded config: %d professionals, %d expert slugs\n",
		len(cfg.ProfessionalIDs), len(cfg.ExpertSlugs))
	logger.Printf("📁 ExportDir: %s", cfg.ExportDir)
	return cfg
}

func getEnvOrFail(logger *log.Logger, key string) string {
	val := os.Getenv(key)
	if val == "" {
		logger.Fatalf("❌ Environment variable %s is required but not set", key)
	}
	return val
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseListEnv(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIDListEnv(key string) ([]int64, error) {
	parts := parseListEnv(key)
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid %s entry %q (want positive integer)", key, p)
		}
		out = append(out, id)
	}
	return out, nil
}
