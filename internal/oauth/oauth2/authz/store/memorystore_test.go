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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/model"
)

type InMemoryCodeStoreTestSuite struct {
	suite.Suite
	store AuthorizationCodeStoreInterface
}

func TestInMemoryCodeStoreTestSuite(t *testing.T) {
	suite.Run(t, new(InMemoryCodeStoreTestSuite))
}

func (suite *InMemoryCodeStoreTestSuite) SetupTest() {
	suite.store = NewInMemoryAuthorizationCodeStore()
}

func (suite *InMemoryCodeStoreTestSuite) activeCode() model.AuthorizationCode {
	now := time.Now()
	return model.AuthorizationCode{
		CodeID:           "test-code-id",
		Code:             "test-code",
		ClientID:         "test-client-id",
		RedirectURI:      "https://client.example.com/callback",
		AuthorizedUserID: "test-user",
		TimeCreated:      now,
		ExpiryTime:       now.Add(5 * time.Minute),
		Scopes:           "openid profile",
		State:            constants.AuthCodeStateActive,
	}
}

func (suite *InMemoryCodeStoreTestSuite) TestInsertAndGet() {
	err := suite.store.InsertAuthorizationCode(suite.activeCode())
	assert.NoError(suite.T(), err)

	stored, err := suite.store.GetAuthorizationCode("test-client-id", "test-code")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "test-user", stored.AuthorizedUserID)
	assert.Equal(suite.T(), constants.AuthCodeStateActive, stored.State)
}

func (suite *InMemoryCodeStoreTestSuite) TestGetUnknownCode() {
	_, err := suite.store.GetAuthorizationCode("test-client-id", "unknown-code")
	assert.ErrorIs(suite.T(), err, constants.ErrAuthorizationCodeNotFound)
}

func (suite *InMemoryCodeStoreTestSuite) TestConsumeDeactivates() {
	err := suite.store.InsertAuthorizationCode(suite.activeCode())
	assert.NoError(suite.T(), err)

	consumed, err := suite.store.ConsumeAuthorizationCode("test-client-id", "test-code")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.AuthCodeStateInactive, consumed.State)

	stored, err := suite.store.GetAuthorizationCode("test-client-id", "test-code")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.AuthCodeStateInactive, stored.State)
}

func (suite *InMemoryCodeStoreTestSuite) TestConsumeSecondAttemptFails() {
	err := suite.store.InsertAuthorizationCode(suite.activeCode())
	assert.NoError(suite.T(), err)

	_, err = suite.store.ConsumeAuthorizationCode("test-client-id", "test-code")
	assert.NoError(suite.T(), err)

	_, err = suite.store.ConsumeAuthorizationCode("test-client-id", "test-code")
	assert.ErrorIs(suite.T(), err, constants.ErrAuthorizationCodeConsumed)
}

func (suite *InMemoryCodeStoreTestSuite) TestConsumeExpiredCode() {
	code := suite.activeCode()
	code.ExpiryTime = time.Now().Add(-1 * time.Minute)
	err := suite.store.InsertAuthorizationCode(code)
	assert.NoError(suite.T(), err)

	_, err = suite.store.ConsumeAuthorizationCode("test-client-id", "test-code")
	assert.ErrorIs(suite.T(), err, constants.ErrAuthorizationCodeConsumed)
}

func (suite *InMemoryCodeStoreTestSuite) TestConcurrentConsumeSingleWinner() {
	err := suite.store.InsertAuthorizationCode(suite.activeCode())
	assert.NoError(suite.T(), err)

	const attempts = 32
	var wg sync.WaitGroup
	successes := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, consumeErr := suite.store.ConsumeAuthorizationCode(
				"test-client-id", "test-code"); consumeErr == nil {
				successes <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(successes)

	count := 0
	for range successes {
		count++
	}
	assert.Equal(suite.T(), 1, count)
}

func (suite *InMemoryCodeStoreTestSuite) TestRevokeAndExpire() {
	err := suite.store.InsertAuthorizationCode(suite.activeCode())
	assert.NoError(suite.T(), err)

	err = suite.store.RevokeAuthorizationCode(suite.activeCode())
	assert.NoError(suite.T(), err)
	stored, err := suite.store.GetAuthorizationCode("test-client-id", "test-code")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.AuthCodeStateRevoked, stored.State)

	err = suite.store.ExpireAuthorizationCode(suite.activeCode())
	assert.NoError(suite.T(), err)
	stored, err = suite.store.GetAuthorizationCode("test-client-id", "test-code")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.AuthCodeStateExpired, stored.State)
}
