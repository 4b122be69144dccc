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

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asgardeo/flint/internal/oauth/consent/constants"
	"github.com/asgardeo/flint/internal/oauth/consent/model"
	"github.com/asgardeo/flint/internal/system/database/provider"
	"github.com/asgardeo/flint/internal/system/log"
)

// ConsentStore is the relational database backed consent store.
type ConsentStore struct {
	DBProvider provider.DBProviderInterface
}

// NewConsentStore creates a new instance of ConsentStore.
func NewConsentStore() ConsentStoreInterface {
	return &ConsentStore{
		DBProvider: provider.NewDBProvider(),
	}
}

// GetGrant retrieves the consent grant for the given subject and client.
func (cs *ConsentStore) GetGrant(_ context.Context, subject, clientID string) (*model.ConsentGrant, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ConsentStore"))

	dbClient, err := cs.DBProvider.GetDBClient("consent")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Failed to close database client", log.Error(closeErr))
		}
	}()

	results, err := dbClient.Query(constants.QueryGetConsentGrant, subject, clientID)
	if err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrConsentNotFound
	}

	row := results[0]
	grantID, _ := row["grant_id"].(string)
	scopes, _ := row["scopes"].(string)
	grantedAt, _ := row["granted_at"].(time.Time)

	return &model.ConsentGrant{
		GrantID:   grantID,
		Subject:   subject,
		ClientID:  clientID,
		Scopes:    strings.Fields(scopes),
		GrantedAt: grantedAt,
	}, nil
}

// SaveGrant stores a consent grant, replacing any previous grant for the
// same subject and client.
func (cs *ConsentStore) SaveGrant(_ context.Context, grant *model.ConsentGrant) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ConsentStore"))

	dbClient, err := cs.DBProvider.GetDBClient("consent")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return fmt.Errorf("failed to get database client: %w", err)
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Failed to close database client", log.Error(closeErr))
		}
	}()

	_, err = dbClient.Execute(constants.QueryUpsertConsentGrant, grant.GrantID, grant.Subject,
		grant.ClientID, strings.Join(grant.Scopes, " "), grant.GrantedAt)
	if err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

// RevokeGrant removes the consent grant for the given subject and client.
func (cs *ConsentStore) RevokeGrant(_ context.Context, subject, clientID string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ConsentStore"))

	dbClient, err := cs.DBProvider.GetDBClient("consent")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return fmt.Errorf("failed to get database client: %w", err)
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Failed to close database client", log.Error(closeErr))
		}
	}()

	_, err = dbClient.Execute(constants.QueryDeleteConsentGrant, subject, clientID)
	if err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}
