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

// Package service provides application management operations.
package service

import (
	"github.com/asgardeo/flint/internal/application/model"
	"github.com/asgardeo/flint/internal/application/store"
	"github.com/asgardeo/flint/internal/system/log"
	"github.com/asgardeo/flint/internal/system/utils"
)

// ApplicationServiceInterface defines the operations offered by the
// application management service.
type ApplicationServiceInterface interface {
	GetOAuthApplication(clientID string) (*model.Application, error)
	CreateApplication(app *model.Application) (*model.Application, error)
}

// ApplicationService implements ApplicationServiceInterface.
type ApplicationService struct {
	Store store.ApplicationStoreInterface
}

// NewApplicationService creates a new instance of ApplicationService.
func NewApplicationService() ApplicationServiceInterface {
	return &ApplicationService{
		Store: store.NewApplicationStore(),
	}
}

// GetOAuthApplication retrieves the application registered under the given
// client identifier.
func (as *ApplicationService) GetOAuthApplication(clientID string) (*model.Application, error) {
	return as.Store.GetApplicationByClientID(clientID)
}

// CreateApplication registers a new application. A missing identifier is
// generated, and the client secret is expected to be hashed by the caller.
func (as *ApplicationService) CreateApplication(app *model.Application) (*model.Application, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ApplicationService"))

	if app.ID == "" {
		app.ID = utils.GenerateUUID()
	}
	if err := as.Store.CreateApplication(app); err != nil {
		logger.Error("Failed to create application", log.Error(err))
		return nil, err
	}
	return app, nil
}
