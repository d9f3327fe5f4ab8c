package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig      `json:"basic_config"`
	AWS         AWSConfig        `json:"aws"`
	QuickSight  QuickSightConfig `json:"quicksight"`
	Redis       RedisConfig      `json:"redis"`
}

type BasicConfig struct {
	ServerAddress string `json:"server_address"`
	// LocalMode swaps the AWS collaborators for in-memory stand-ins served by
	// the API itself. Not durable, development only.
	LocalMode bool `json:"local_mode"`
	// PublicBaseURL is the address local-mode presigned URLs point back at.
	PublicBaseURL string `json:"public_base_url"`
	// AuthEnabled turns on the bearer-token middleware.
	AuthEnabled bool `json:"auth_enabled"`
	// AuthCacheTTLMinutes bounds how long a verified token is cached.
	AuthCacheTTLMinutes int `json:"auth_cache_ttl_minutes"`
	// AuthTokens maps static bearer tokens to subjects when no external
	// identity provider is wired in.
	AuthTokens map[string]string `json:"auth_tokens"`
}

type AWSConfig struct {
	Region     string `json:"region"`
	BucketName string `json:"bucket_name"`
	TableName  string `json:"table_name"`
}

type QuickSightConfig struct {
	AccountID string `json:"account_id"`
	TopicARN  string `json:"topic_arn"`
	Namespace string `json:"namespace"`
	UserName  string `json:"user_name"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// Load reads configuration from the provided path (defaults to config.json).
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", absPath, err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if !cfg.BasicConfig.LocalMode {
		if cfg.AWS.BucketName == "" {
			return nil, fmt.Errorf("aws.bucket_name must be configured")
		}
		if cfg.AWS.TableName == "" {
			return nil, fmt.Errorf("aws.table_name must be configured")
		}
	}

	return &cfg, nil
}
