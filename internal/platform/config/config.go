// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and handed to components through their
constructors.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Playbill API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Store (Redis) for sign-in state and sessions
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for access token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Federated identity (OpenID Connect)
	OIDCIssuerURL    string `env:"OIDC_ISSUER_URL"    envDefault:"https://accounts.google.com"`
	OIDCClientID     string `env:"OIDC_CLIENT_ID,required"`
	OIDCClientSecret string `env:"OIDC_CLIENT_SECRET,required"`
	OIDCRedirectURL  string `env:"OIDC_REDIRECT_URL,required"`

	// AdminEmails lists identities granted the admin role at first sign-in.
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	// AppOrigin is the browser-facing origin (CORS + post sign-in redirect).
	AppOrigin string `env:"APP_ORIGIN" envDefault:"http://localhost:5173"`

	// Media storage for uploaded posters
	MediaDir     string `env:"MEDIA_DIR"      envDefault:"./data/media"`
	MediaBaseURL string `env:"MEDIA_BASE_URL" envDefault:"/media"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	cfg.AdminEmails = normalizeEmails(cfg.AdminEmails)
	cfg.MediaBaseURL = strings.TrimSuffix(cfg.MediaBaseURL, "/")

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

// AllowedOrigin returns the single browser origin allowed outside development.
func (c *Config) AllowedOrigin() string {
	return c.AppOrigin
}

// normalizeEmails lowercases and trims the admin list, dropping blanks.
func normalizeEmails(emails []string) []string {
	out := make([]string, 0, len(emails))
	for _, email := range emails {
		if clean := strings.ToLower(strings.TrimSpace(email)); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
