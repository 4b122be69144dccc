/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/asgardeo/flint/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// GateClientConfig holds the configuration of the pages handling user interaction.
type GateClientConfig struct {
	Scheme      string `yaml:"scheme"`
	Hostname    string `yaml:"hostname"`
	Port        int    `yaml:"port"`
	LoginPath   string `yaml:"login_path"`
	ConsentPath string `yaml:"consent_path"`
	ErrorPath   string `yaml:"error_path"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
	URI      string `yaml:"uri"`
	Options  string `yaml:"options"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Identity DataSource `yaml:"identity"`
	Runtime  DataSource `yaml:"runtime"`
	Consent  DataSource `yaml:"consent"`
}

// JWTConfig holds the JWT configuration details.
type JWTConfig struct {
	Issuer         string `yaml:"issuer"`
	ValidityPeriod int64  `yaml:"validity_period"`
}

// AuthorizationCodeConfig holds the authorization code issuance configuration details.
type AuthorizationCodeConfig struct {
	ValidityPeriod int64 `yaml:"validity_period"`
}

// OAuthConfig holds the OAuth configuration details.
type OAuthConfig struct {
	JWT               JWTConfig               `yaml:"jwt"`
	AuthorizationCode AuthorizationCodeConfig `yaml:"authorization_code"`
}

// RateLimitConfig holds the authorize endpoint rate limit configuration details.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerSecond int  `yaml:"requests_per_second"`
	Burst             int  `yaml:"burst"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	GateClient GateClientConfig `yaml:"gate_client"`
	Security   SecurityConfig   `yaml:"security"`
	Database   DatabaseConfig   `yaml:"database"`
	OAuth      OAuthConfig      `yaml:"oauth"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// LoadConfig loads the configurations from the specified file path.
func LoadConfig(path string) (*Config, error) {
	logger := log.GetLogger()

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		logger.Error("Failed to read configuration file", log.String("path", cleanPath), log.Error(err))
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("Failed to parse configuration file", log.Error(err))
		return nil, err
	}

	return &cfg, nil
}
