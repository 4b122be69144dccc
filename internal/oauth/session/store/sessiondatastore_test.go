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

	authzmodel "github.com/asgardeo/flint/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/flint/internal/oauth/session/model"
)

type SessionDataStoreTestSuite struct {
	suite.Suite
	store SessionDataStoreInterface
}

func TestSessionDataStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionDataStoreTestSuite))
}

func (suite *SessionDataStoreTestSuite) SetupTest() {
	suite.store = GetSessionDataStore()
	suite.store.ClearSessionStore()
}

func (suite *SessionDataStoreTestSuite) testSessionData() model.SessionData {
	return model.SessionData{
		AuthorizeRequest: &authzmodel.ValidatedAuthorizeRequest{
			ClientID:    "test-client-id",
			RedirectURI: "https://client.example.com/callback",
			State:       "xyz",
		},
		LoggedInSubject: "user-1",
		AuthTime:        time.Now(),
	}
}

func (suite *SessionDataStoreTestSuite) TestSingletonInstance() {
	assert.Same(suite.T(), GetSessionDataStore(), GetSessionDataStore())
}

func (suite *SessionDataStoreTestSuite) TestAddAndGetSession() {
	sessionData := suite.testSessionData()
	suite.store.AddSession("key-1", sessionData)

	found, retrieved := suite.store.GetSession("key-1")

	assert.True(suite.T(), found)
	assert.Equal(suite.T(), "user-1", retrieved.LoggedInSubject)
	assert.Equal(suite.T(), "test-client-id", retrieved.AuthorizeRequest.ClientID)

	// GetSession does not remove the entry.
	found, _ = suite.store.GetSession("key-1")
	assert.True(suite.T(), found)
}

func (suite *SessionDataStoreTestSuite) TestGetUnknownSession() {
	found, sessionData := suite.store.GetSession("no-such-key")

	assert.False(suite.T(), found)
	assert.Nil(suite.T(), sessionData.AuthorizeRequest)
}

func (suite *SessionDataStoreTestSuite) TestAddSessionWithEmptyKey() {
	suite.store.AddSession("", suite.testSessionData())

	found, _ := suite.store.GetSession("")
	assert.False(suite.T(), found)
}

func (suite *SessionDataStoreTestSuite) TestConsumeSessionIsOneShot() {
	suite.store.AddSession("key-1", suite.testSessionData())

	found, retrieved := suite.store.ConsumeSession("key-1")
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), "user-1", retrieved.LoggedInSubject)

	// A consumed key cannot be replayed.
	found, _ = suite.store.ConsumeSession("key-1")
	assert.False(suite.T(), found)
	found, _ = suite.store.GetSession("key-1")
	assert.False(suite.T(), found)
}

func (suite *SessionDataStoreTestSuite) TestConsumeSessionConcurrently() {
	suite.store.AddSession("key-1", suite.testSessionData())

	var wg sync.WaitGroup
	winners := make(chan struct{}, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if found, _ := suite.store.ConsumeSession("key-1"); found {
				winners <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(winners)

	assert.Len(suite.T(), winners, 1)
}

func (suite *SessionDataStoreTestSuite) TestClearSession() {
	suite.store.AddSession("key-1", suite.testSessionData())
	suite.store.AddSession("key-2", suite.testSessionData())

	suite.store.ClearSession("key-1")

	found, _ := suite.store.GetSession("key-1")
	assert.False(suite.T(), found)
	found, _ = suite.store.GetSession("key-2")
	assert.True(suite.T(), found)
}

func (suite *SessionDataStoreTestSuite) TestClearSessionStore() {
	suite.store.AddSession("key-1", suite.testSessionData())
	suite.store.AddSession("key-2", suite.testSessionData())

	suite.store.ClearSessionStore()

	found, _ := suite.store.GetSession("key-1")
	assert.False(suite.T(), found)
	found, _ = suite.store.GetSession("key-2")
	assert.False(suite.T(), found)
}

func (suite *SessionDataStoreTestSuite) TestExpiredSessionIsNotReturned() {
	sds := &SessionDataStore{
		sessionStore:   make(map[string]sessionStoreEntry),
		validityPeriod: -1 * time.Minute,
	}
	sds.AddSession("key-1", suite.testSessionData())

	found, _ := sds.GetSession("key-1")
	assert.False(suite.T(), found)

	sds.AddSession("key-2", suite.testSessionData())
	found, _ = sds.ConsumeSession("key-2")
	assert.False(suite.T(), found)
}
