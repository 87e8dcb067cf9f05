package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/notehub/internal/flagx"
	"github.com/dmitrijs2005/notehub/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the configuration. Pointer fields let
// a file override only the keys it mentions.
type fileConfig struct {
	BaseURL         *string         `json:"base_url" yaml:"base_url"`
	DBPath          *string         `json:"db_path" yaml:"db_path"`
	LogLevel        *string         `json:"log_level" yaml:"log_level"`
	LogFile         *string         `json:"log_file" yaml:"log_file"`
	PerPage         *int            `json:"per_page" yaml:"per_page"`
	HTTPTimeout     *timex.Duration `json:"http_timeout" yaml:"http_timeout"`
	ProfileCacheTTL *timex.Duration `json:"profile_cache_ttl" yaml:"profile_cache_ttl"`
	ExportDir       *string         `json:"export_dir" yaml:"export_dir"`
	S3              *S3Config       `json:"s3" yaml:"s3"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.DBPath != nil {
		cfg.DBPath = *fc.DBPath
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}
	if fc.PerPage != nil {
		cfg.PerPage = *fc.PerPage
	}
	if fc.HTTPTimeout != nil {
		cfg.HTTPTimeout = fc.HTTPTimeout.Duration
	}
	if fc.ProfileCacheTTL != nil {
		cfg.ProfileCacheTTL = fc.ProfileCacheTTL.Duration
	}
	if fc.ExportDir != nil {
		cfg.ExportDir = *fc.ExportDir
	}
	if fc.S3 != nil {
		cfg.S3 = *fc.S3
	}
}
