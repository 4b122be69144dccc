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

// Package constants defines constants used by the application module.
package constants

import (
	"errors"

	dbmodel "github.com/asgardeo/flint/internal/system/database/model"
)

// ErrApplicationNotFound is returned when no application matches the lookup key.
var ErrApplicationNotFound = errors.New("application not found")

var (
	// QueryGetApplicationByClientID retrieves an application by its OAuth2 client identifier.
	QueryGetApplicationByClientID = dbmodel.DBQuery{
		ID: "APQ-APP_MGT-01",
		Query: "SELECT app_id, app_name, description, consumer_key, consumer_secret, redirect_uris, " +
			"response_types, grant_types, scopes FROM sp_app WHERE consumer_key = $1",
	}

	// QueryCreateApplication inserts a new application registration.
	QueryCreateApplication = dbmodel.DBQuery{
		ID: "APQ-APP_MGT-02",
		Query: "INSERT INTO sp_app (app_id, app_name, description, consumer_key, consumer_secret, " +
			"redirect_uris, response_types, grant_types, scopes) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
	}
)
