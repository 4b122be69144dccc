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
	"time"

	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/model"
)

// InMemoryAuthorizationCodeStore keeps authorization codes in memory.
// Intended for tests and single-node development setups. Consumption
// holds the store lock for the lookup and the state change, so a code
// can only be spent once.
type InMemoryAuthorizationCodeStore struct {
	codes map[string]*model.AuthorizationCode
	mu    sync.Mutex
}

// NewInMemoryAuthorizationCodeStore creates a new instance of InMemoryAuthorizationCodeStore.
func NewInMemoryAuthorizationCodeStore() AuthorizationCodeStoreInterface {
	return &InMemoryAuthorizationCodeStore{
		codes: make(map[string]*model.AuthorizationCode),
	}
}

func codeKey(clientID, authCode string) string {
	return clientID + "|" + authCode
}

// InsertAuthorizationCode stores a new authorization code.
func (ms *InMemoryAuthorizationCodeStore) InsertAuthorizationCode(authzCode model.AuthorizationCode) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.codes[codeKey(authzCode.ClientID, authzCode.Code)] = &authzCode
	return nil
}

// GetAuthorizationCode retrieves an authorization code by client Id and authorization code.
func (ms *InMemoryAuthorizationCodeStore) GetAuthorizationCode(clientID, authCode string) (
	model.AuthorizationCode, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	stored, ok := ms.codes[codeKey(clientID, authCode)]
	if !ok {
		return model.AuthorizationCode{}, constants.ErrAuthorizationCodeNotFound
	}
	return *stored, nil
}

// ConsumeAuthorizationCode atomically deactivates an active authorization
// code and returns it.
func (ms *InMemoryAuthorizationCodeStore) ConsumeAuthorizationCode(clientID, authCode string) (
	model.AuthorizationCode, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	stored, ok := ms.codes[codeKey(clientID, authCode)]
	if !ok {
		return model.AuthorizationCode{}, constants.ErrAuthorizationCodeNotFound
	}
	if stored.State != constants.AuthCodeStateActive {
		return model.AuthorizationCode{}, constants.ErrAuthorizationCodeConsumed
	}
	if time.Now().After(stored.ExpiryTime) {
		stored.State = constants.AuthCodeStateExpired
		return model.AuthorizationCode{}, constants.ErrAuthorizationCodeConsumed
	}

	stored.State = constants.AuthCodeStateInactive
	return *stored, nil
}

// RevokeAuthorizationCode revokes an authorization code.
func (ms *InMemoryAuthorizationCodeStore) RevokeAuthorizationCode(authzCode model.AuthorizationCode) error {
	return ms.updateState(authzCode, constants.AuthCodeStateRevoked)
}

// ExpireAuthorizationCode expires an authorization code.
func (ms *InMemoryAuthorizationCodeStore) ExpireAuthorizationCode(authzCode model.AuthorizationCode) error {
	return ms.updateState(authzCode, constants.AuthCodeStateExpired)
}

func (ms *InMemoryAuthorizationCodeStore) updateState(authzCode model.AuthorizationCode, newState string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	stored, ok := ms.codes[codeKey(authzCode.ClientID, authzCode.Code)]
	if !ok {
		return constants.ErrAuthorizationCodeNotFound
	}
	stored.State = newState
	return nil
}
