// Copyright (c) 2026 Boyama. All rights reserved.
// Author: arda.kose.tr@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, S3) via constructors.
  - Zero Hidden State: No component reads the environment after startup.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Boyama API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Rendered-page cache + session allow-list (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Admin session signing and credentials
	SessionSecret     string `env:"SESSION_SECRET,required"`
	AdminEmail        string `env:"ADMIN_EMAIL,required"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH,required"` // bcrypt

	// Object Storage (Cloudflare R2 / MinIO / S3-compatible)
	S3Bucket          string `env:"S3_BUCKET,required"`
	S3Region          string `env:"S3_REGION"        envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`

	// PublicAssetBaseURL is the CDN/public origin that serves object keys.
	PublicAssetBaseURL string `env:"PUBLIC_ASSET_BASE_URL,required"`

	// SignedURLTTL bounds the validity of download links.
	SignedURLTTL time.Duration `env:"SIGNED_URL_TTL" envDefault:"10m"`

	// Upload ceilings, enforced per endpoint before derivation starts.
	MaxUploadBytes      int64 `env:"MAX_UPLOAD_BYTES"       envDefault:"10485760"` // 10 MB
	MaxChildUploadBytes int64 `env:"MAX_CHILD_UPLOAD_BYTES" envDefault:"5242880"`  // 5 MB

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
