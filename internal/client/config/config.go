package config

import (
	"os"
	"time"
)

// S3Config selects the bucket downloads are exported to. An empty Bucket
// keeps exports on the local filesystem. Endpoint points at an
// S3-compatible server such as MinIO; AccessKey/SecretKey, when set,
// replace the default AWS credential chain.
type S3Config struct {
	Bucket    string `json:"bucket" yaml:"bucket"`
	Region    string `json:"region" yaml:"region"`
	Prefix    string `json:"prefix" yaml:"prefix"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
}

// Config holds runtime settings for the NoteHub CLI.
//
// HTTPTimeout of zero leaves the transport default in place.
type Config struct {
	BaseURL         string
	DBPath          string
	LogLevel        string
	LogFile         string
	PerPage         int
	HTTPTimeout     time.Duration
	ProfileCacheTTL time.Duration
	ExportDir       string
	S3              S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000/api/v1"
	c.DBPath = "notehub.db"
	c.LogLevel = "info"
	c.LogFile = ""
	c.PerPage = 10
	c.HTTPTimeout = 0
	c.ProfileCacheTTL = 5 * time.Minute
	c.ExportDir = "downloads"
	c.S3 = S3Config{Prefix: "notes/"}
}

// LoadConfig builds the configuration from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load constructs a Config, applies defaults, then overlays the config file,
// the environment and finally args. Later sources take precedence.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
