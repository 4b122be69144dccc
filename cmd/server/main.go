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

// Package main is the entry point for starting the Flint server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/asgardeo/flint/internal/authn"
	consentstore "github.com/asgardeo/flint/internal/oauth/consent/store"
	"github.com/asgardeo/flint/internal/oauth/oauth2/authz"
	authzstore "github.com/asgardeo/flint/internal/oauth/oauth2/authz/store"
	"github.com/asgardeo/flint/internal/oauth/token"
	"github.com/asgardeo/flint/internal/system/config"
	"github.com/asgardeo/flint/internal/system/log"
	"github.com/asgardeo/flint/internal/system/managers"
	"github.com/asgardeo/flint/internal/system/security"
)

func main() {
	logger := log.GetLogger()

	flintHome := getFlintHome(logger)

	cfg := initFlintConfigurations(logger, flintHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	mux := initMultiplexer(logger, cfg)
	if mux == nil {
		logger.Fatal("Failed to initialize multiplexer")
	}

	if cfg.Server.HTTPOnly {
		logger.Info("TLS is not enabled, starting server without TLS")
		startHTTPServer(logger, cfg, mux)
	} else {
		startTLSServer(logger, cfg, mux, flintHome)
	}
}

// getFlintHome retrieves and returns the Flint home directory.
func getFlintHome(logger *log.Logger) string {
	// Parse project directory from command line arguments.
	projectHome := ""
	projectHomeFlag := flag.String("flintHome", "", "Path to Flint home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using flintHome from command line argument", log.String("flintHome", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}

// initFlintConfigurations initializes the Flint configurations.
func initFlintConfigurations(logger *log.Logger, flintHome string) *config.Config {
	// Load the configurations.
	configFilePath := path.Join(flintHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	// Initialize runtime configurations.
	if err := config.InitializeFlintRuntime(flintHome, cfg); err != nil {
		logger.Fatal("Failed to initialize flint runtime", log.Error(err))
	}

	return cfg
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(logger *log.Logger, cfg *config.Config) *http.ServeMux {
	// Load the server's private key for signing tokens.
	tokenIssuer, err := token.GetTokenIssuer()
	if err != nil {
		logger.Fatal("Failed to initialize token issuer", log.Error(err))
	}

	authHandler := authz.NewAuthorizeHandler(
		newConsentStore(logger, cfg),
		authzstore.NewAuthorizationCodeStore(),
		tokenIssuer,
		authn.NewCookieContextProvider("FLINT_SESSION", nil),
		newRateLimiter(cfg),
	)

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, authHandler)

	// Register the services.
	if err := serviceManager.RegisterServices(); err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// newConsentStore selects the consent store backend from the configuration.
func newConsentStore(logger *log.Logger, cfg *config.Config) consentstore.ConsentStoreInterface {
	if cfg.Database.Consent.Type == "mongodb" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		store, err := consentstore.NewMongoConsentStore(ctx, cfg.Database.Consent.URI)
		if err != nil {
			logger.Fatal("Failed to connect to the consent database", log.Error(err))
		}
		return store
	}
	return consentstore.NewConsentStore()
}

// newRateLimiter builds the authorize endpoint rate limiter when enabled.
func newRateLimiter(cfg *config.Config) security.RateLimiterInterface {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return security.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
}

// startTLSServer starts the HTTPS server with TLS configuration.
func startTLSServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux, flintHome string) {
	server, serverAddr := createHTTPServer(cfg, mux)

	certFile := path.Join(flintHome, cfg.Security.CertFile)
	keyFile := path.Join(flintHome, cfg.Security.KeyFile)

	logger.Info("Flint server started (HTTPS)...", log.String("address", serverAddr))

	if err := server.ListenAndServeTLS(certFile, keyFile); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// startHTTPServer starts the HTTP server without TLS.
func startHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) {
	server, serverAddr := createHTTPServer(cfg, mux)

	logger.Info("Flint server started (HTTP)...", log.String("address", serverAddr))

	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Failed to serve HTTP requests", log.Error(err))
	}
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	// Build the server address using hostname and port from the configurations.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second, // Mitigate Slowloris attacks
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return server, serverAddr
}
