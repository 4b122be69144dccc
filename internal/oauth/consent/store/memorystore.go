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
	"sync"

	"github.com/asgardeo/flint/internal/oauth/consent/model"
)

// InMemoryConsentStore keeps consent grants in memory. Intended for tests
// and single-node development setups.
type InMemoryConsentStore struct {
	grants map[string]*model.ConsentGrant
	mu     sync.RWMutex
}

// NewInMemoryConsentStore creates a new instance of InMemoryConsentStore.
func NewInMemoryConsentStore() ConsentStoreInterface {
	return &InMemoryConsentStore{
		grants: make(map[string]*model.ConsentGrant),
	}
}

func grantKey(subject, clientID string) string {
	return subject + "|" + clientID
}

// GetGrant retrieves the consent grant for the given subject and client.
func (ms *InMemoryConsentStore) GetGrant(_ context.Context, subject, clientID string) (
	*model.ConsentGrant, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	grant, ok := ms.grants[grantKey(subject, clientID)]
	if !ok {
		return nil, ErrConsentNotFound
	}
	copied := *grant
	return &copied, nil
}

// SaveGrant stores a consent grant, replacing any previous grant for the
// same subject and client.
func (ms *InMemoryConsentStore) SaveGrant(_ context.Context, grant *model.ConsentGrant) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	copied := *grant
	ms.grants[grantKey(grant.Subject, grant.ClientID)] = &copied
	return nil
}

// RevokeGrant removes the consent grant for the given subject and client.
func (ms *InMemoryConsentStore) RevokeGrant(_ context.Context, subject, clientID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.grants, grantKey(subject, clientID))
	return nil
}
