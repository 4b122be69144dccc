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

package client

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/asgardeo/flint/internal/system/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient DBClientInterface
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}

	db := model.NewDB(suite.mockDB)
	suite.dbClient = NewDBClient(db, "mock")
}

func (suite *DBClientTestSuite) TearDownTest() {
	if suite.mock != nil {
		if err := suite.mock.ExpectationsWereMet(); err != nil {
			suite.T().Fatalf("There were unfulfilled expectations: %v", err)
		}
	}
}

func (suite *DBClientTestSuite) TestQuerySuccess() {
	testQuery := model.DBQuery{
		ID:    "test_query_success",
		Query: "SELECT consumer_key, callback_url FROM sp_app WHERE consumer_key = ?",
	}
	args := []interface{}{"client-1"}
	mockArgs := []driver.Value{"client-1"}

	columns := []string{"CONSUMER_KEY", "CALLBACK_URL"}
	rows := sqlmock.NewRows(columns).
		AddRow("client-1", "https://client.example.com/callback")
	suite.mock.ExpectQuery("SELECT consumer_key, callback_url FROM sp_app WHERE consumer_key = ?").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
	// Column names are normalized to lowercase regardless of driver casing.
	assert.Equal(suite.T(), "client-1", results[0]["consumer_key"])
	assert.Equal(suite.T(), "https://client.example.com/callback", results[0]["callback_url"])
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryEmptyResults() {
	testQuery := model.DBQuery{
		ID:    "test_query_empty",
		Query: "SELECT consumer_key FROM sp_app WHERE consumer_key = ?",
	}
	args := []interface{}{"missing-client"}
	mockArgs := []driver.Value{"missing-client"}

	rows := sqlmock.NewRows([]string{"consumer_key"})
	suite.mock.ExpectQuery("SELECT consumer_key FROM sp_app WHERE consumer_key = ?").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), results)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryDatabaseError() {
	testQuery := model.DBQuery{
		ID:    "test_query_error",
		Query: "SELECT code_id FROM non_existent_table",
	}

	expectedErr := errors.New("table not found")
	suite.mock.ExpectQuery("SELECT code_id FROM non_existent_table").
		WillReturnError(expectedErr)

	results, err := suite.dbClient.Query(testQuery)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), results)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQuerySelectsSQLiteVariant() {
	testQuery := model.DBQuery{
		ID:          "test_query_variant",
		Query:       "SELECT code_id FROM idn_oauth2_authz_code WHERE state = $1",
		SQLiteQuery: "SELECT code_id FROM idn_oauth2_authz_code WHERE state = ?",
	}

	db := model.NewDB(suite.mockDB)
	sqliteClient := NewDBClient(db, "sqlite")

	rows := sqlmock.NewRows([]string{"code_id"}).AddRow("code-1")
	suite.mock.ExpectQuery("SELECT code_id FROM idn_oauth2_authz_code WHERE state = \\?").
		WithArgs(driver.Value("ACTIVE")).
		WillReturnRows(rows)

	results, err := sqliteClient.Query(testQuery, "ACTIVE")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteSuccess() {
	testQuery := model.DBQuery{
		ID:    "test_execute_success",
		Query: "UPDATE idn_oauth2_authz_code SET state = ? WHERE code_id = ?",
	}
	args := []interface{}{"REVOKED", "code-1"}
	mockArgs := []driver.Value{"REVOKED", "code-1"}

	suite.mock.ExpectExec("UPDATE idn_oauth2_authz_code SET state = \\? WHERE code_id = \\?").
		WithArgs(mockArgs...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteZeroRowsAffected() {
	testQuery := model.DBQuery{
		ID:    "test_execute_zero",
		Query: "UPDATE idn_oauth2_authz_code SET state = ? WHERE code_id = ? AND state = ?",
	}
	args := []interface{}{"INACTIVE", "code-1", "ACTIVE"}
	mockArgs := []driver.Value{"INACTIVE", "code-1", "ACTIVE"}

	suite.mock.ExpectExec("UPDATE idn_oauth2_authz_code SET state = \\? WHERE code_id = \\? AND state = \\?").
		WithArgs(mockArgs...).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(0), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteDatabaseError() {
	testQuery := model.DBQuery{
		ID:    "test_execute_db_error",
		Query: "UPDATE non_existent_table SET state = ? WHERE code_id = ?",
	}
	args := []interface{}{"INACTIVE", "code-1"}
	mockArgs := []driver.Value{"INACTIVE", "code-1"}

	expectedErr := errors.New("table not found")
	suite.mock.ExpectExec("UPDATE non_existent_table SET state = \\? WHERE code_id = \\?").
		WithArgs(mockArgs...).
		WillReturnError(expectedErr)

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Equal(suite.T(), int64(0), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestExecuteRowsAffectedError() {
	testQuery := model.DBQuery{
		ID:    "test_execute_rows_error",
		Query: "INSERT INTO idn_oauth2_authz_code (code_id) VALUES (?)",
	}
	args := []interface{}{"code-1"}
	mockArgs := []driver.Value{"code-1"}

	result := sqlmock.NewErrorResult(errors.New("rows affected error"))
	suite.mock.ExpectExec("INSERT INTO idn_oauth2_authz_code").
		WithArgs(mockArgs...).
		WillReturnResult(result)

	rowsAffected, err := suite.dbClient.Execute(testQuery, args...)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "rows affected error")
	assert.Equal(suite.T(), int64(0), rowsAffected)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestBeginTxSuccess() {
	suite.mock.ExpectBegin()

	tx, err := suite.dbClient.BeginTx()

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), tx)
	assert.Implements(suite.T(), (*model.TxInterface)(nil), tx)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestBeginTxError() {
	expectedErr := errors.New("transaction error")
	suite.mock.ExpectBegin().WillReturnError(expectedErr)

	tx, err := suite.dbClient.BeginTx()

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), expectedErr, err)
	assert.Nil(suite.T(), tx)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestCloseSuccess() {
	suite.mock.ExpectClose()

	err := suite.dbClient.Close()

	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
