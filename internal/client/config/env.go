package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "NOTEHUB_"

// parseEnv loads .env (when present) and overlays NOTEHUB_* variables.
// Variables already set in the process environment win over .env entries.
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	setString(&cfg.BaseURL, "BASE_URL")
	setString(&cfg.DBPath, "DB_PATH")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFile, "LOG_FILE")
	setString(&cfg.ExportDir, "EXPORT_DIR")
	setString(&cfg.S3.Bucket, "S3_BUCKET")
	setString(&cfg.S3.Region, "S3_REGION")
	setString(&cfg.S3.Prefix, "S3_PREFIX")
	setString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3.SecretKey, "S3_SECRET_KEY")

	if v, ok := lookup("PER_PAGE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sPER_PAGE: %w", envPrefix, err)
		}
		cfg.PerPage = n
	}
	if err := setDuration(&cfg.HTTPTimeout, "HTTP_TIMEOUT"); err != nil {
		return err
	}
	return setDuration(&cfg.ProfileCacheTTL, "PROFILE_CACHE_TTL")
}

func lookup(key string) (string, bool) {
	return os.LookupEnv(envPrefix + key)
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = d
	return nil
}
