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

// Package store provides persistence for registered applications.
package store

import (
	"fmt"
	"strings"

	"github.com/asgardeo/flint/internal/application/constants"
	"github.com/asgardeo/flint/internal/application/model"
	"github.com/asgardeo/flint/internal/system/database/provider"
	"github.com/asgardeo/flint/internal/system/log"
)

// ApplicationStoreInterface defines the persistence operations for applications.
type ApplicationStoreInterface interface {
	GetApplicationByClientID(clientID string) (*model.Application, error)
	CreateApplication(app *model.Application) error
}

// ApplicationStore is the database backed application store.
type ApplicationStore struct {
	DBProvider provider.DBProviderInterface
}

// NewApplicationStore creates a new instance of ApplicationStore.
func NewApplicationStore() ApplicationStoreInterface {
	return &ApplicationStore{
		DBProvider: provider.NewDBProvider(),
	}
}

// GetApplicationByClientID retrieves the application registered under the
// given client identifier. Returns constants.ErrApplicationNotFound when no
// such registration exists.
func (as *ApplicationStore) GetApplicationByClientID(clientID string) (*model.Application, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ApplicationStore"))

	dbClient, err := as.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Failed to close database client", log.Error(closeErr))
		}
	}()

	results, err := dbClient.Query(constants.QueryGetApplicationByClientID, clientID)
	if err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	if len(results) == 0 {
		return nil, constants.ErrApplicationNotFound
	}
	if len(results) != 1 {
		logger.Error("Unexpected number of results for client id",
			log.String(log.LoggerKeyClientID, log.MaskString(clientID)))
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	return buildApplicationFromResultRow(results[0])
}

// CreateApplication persists a new application registration.
func (as *ApplicationStore) CreateApplication(app *model.Application) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ApplicationStore"))

	dbClient, err := as.DBProvider.GetDBClient("identity")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return fmt.Errorf("failed to get database client: %w", err)
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Failed to close database client", log.Error(closeErr))
		}
	}()

	_, err = dbClient.Execute(constants.QueryCreateApplication, app.ID, app.Name, app.Description,
		app.ClientID, app.HashedClientSecret, strings.Join(app.RedirectURIs, ","),
		strings.Join(app.AllowedResponseTypes, ","), strings.Join(app.AllowedGrantTypes, ","),
		strings.Join(app.AllowedScopes, ","))
	if err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

func buildApplicationFromResultRow(row map[string]interface{}) (*model.Application, error) {
	appID, ok := row["app_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse app_id as string")
	}
	appName, ok := row["app_name"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse app_name as string")
	}
	description, _ := row["description"].(string)
	clientID, ok := row["consumer_key"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse consumer_key as string")
	}
	clientSecret, _ := row["consumer_secret"].(string)
	redirectURIs, _ := row["redirect_uris"].(string)
	responseTypes, _ := row["response_types"].(string)
	grantTypes, _ := row["grant_types"].(string)
	scopes, _ := row["scopes"].(string)

	return &model.Application{
		ID:                   appID,
		Name:                 appName,
		Description:          description,
		ClientID:             clientID,
		HashedClientSecret:   clientSecret,
		RedirectURIs:         splitCSV(redirectURIs),
		AllowedResponseTypes: splitCSV(responseTypes),
		AllowedGrantTypes:    splitCSV(grantTypes),
		AllowedScopes:        splitCSV(scopes),
	}, nil
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
