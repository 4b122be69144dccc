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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"fmt"
	"path"

	"github.com/asgardeo/flint/internal/system/config"
	"github.com/asgardeo/flint/internal/system/database/client"
	"github.com/asgardeo/flint/internal/system/database/model"
)

const (
	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
)

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct{}

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider() DBProviderInterface {
	return &DBProvider{}
}

// GetDBClient returns a database client based on the provided database name.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	var dataSource config.DataSource
	switch dbName {
	case "identity":
		dataSource = config.GetFlintRuntime().Config.Database.Identity
	case "runtime":
		dataSource = config.GetFlintRuntime().Config.Database.Runtime
	case "consent":
		dataSource = config.GetFlintRuntime().Config.Database.Consent
	default:
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}

	dsn, driverName, err := resolveDSN(dataSource)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	return client.NewDBClient(model.NewDB(db), dataSource.Type), nil
}

// resolveDSN builds the driver name and data source name for the given data source configuration.
func resolveDSN(dataSource config.DataSource) (string, string, error) {
	switch dataSource.Type {
	case dataSourceTypePostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Username,
			dataSource.Password, dataSource.Name, dataSource.SSLMode)
		return dsn, "postgres", nil
	case dataSourceTypeSQLite:
		dsn := path.Join(config.GetFlintRuntime().FlintHome, dataSource.Path)
		if dataSource.Options != "" {
			dsn += "?" + dataSource.Options
		}
		return dsn, "sqlite", nil
	default:
		return "", "", fmt.Errorf("unsupported database type: %s", dataSource.Type)
	}
}
