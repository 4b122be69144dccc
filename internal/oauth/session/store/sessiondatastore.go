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

// Package store provides functionality for managing auth session data storage.
package store

import (
	"sync"
	"time"

	"github.com/asgardeo/flint/internal/oauth/session/model"
)

// SessionDataStoreInterface defines the interface for session data storage.
type SessionDataStoreInterface interface {
	AddSession(key string, value model.SessionData)
	GetSession(key string) (bool, model.SessionData)
	ConsumeSession(key string) (bool, model.SessionData)
	ClearSession(key string)
	ClearSessionStore()
}

// sessionStoreEntry represents an entry in the session data store.
type sessionStoreEntry struct {
	sessionData model.SessionData
	expiryTime  time.Time
}

// SessionDataStore provides the session data store functionality.
type SessionDataStore struct {
	sessionStore   map[string]sessionStoreEntry
	validityPeriod time.Duration
	mu             sync.RWMutex
}

var (
	instance *SessionDataStore
	once     sync.Once
)

// GetSessionDataStore returns a singleton instance of SessionDataStore.
func GetSessionDataStore() SessionDataStoreInterface {
	once.Do(func() {
		instance = &SessionDataStore{
			sessionStore:   make(map[string]sessionStoreEntry),
			validityPeriod: 10 * time.Minute, // Set a default validity period.
		}
	})

	return instance
}

// AddSession adds a session data entry to the session store.
func (sds *SessionDataStore) AddSession(key string, value model.SessionData) {
	if key == "" {
		return
	}

	sds.mu.Lock()
	defer sds.mu.Unlock()

	sds.sessionStore[key] = sessionStoreEntry{
		sessionData: value,
		expiryTime:  time.Now().Add(sds.validityPeriod),
	}
}

// GetSession retrieves a session data entry from the session store without
// removing it.
func (sds *SessionDataStore) GetSession(key string) (bool, model.SessionData) {
	if key == "" {
		return false, model.SessionData{}
	}

	sds.mu.RLock()
	entry, exists := sds.sessionStore[key]
	sds.mu.RUnlock()

	if exists {
		if time.Now().Before(entry.expiryTime) {
			return true, entry.sessionData
		}
		// Remove the expired entry.
		sds.mu.Lock()
		delete(sds.sessionStore, key)
		sds.mu.Unlock()
	}

	return false, model.SessionData{}
}

// ConsumeSession retrieves a session data entry and removes it in the same
// critical section, so a sign-in key cannot be replayed.
func (sds *SessionDataStore) ConsumeSession(key string) (bool, model.SessionData) {
	if key == "" {
		return false, model.SessionData{}
	}

	sds.mu.Lock()
	defer sds.mu.Unlock()

	entry, exists := sds.sessionStore[key]
	if !exists {
		return false, model.SessionData{}
	}
	delete(sds.sessionStore, key)

	if time.Now().Before(entry.expiryTime) {
		return true, entry.sessionData
	}
	return false, model.SessionData{}
}

// ClearSession removes a specific session data entry from the session store.
func (sds *SessionDataStore) ClearSession(key string) {
	if key == "" {
		return
	}

	sds.mu.Lock()
	defer sds.mu.Unlock()
	delete(sds.sessionStore, key)
}

// ClearSessionStore removes all session data entries from the session store.
func (sds *SessionDataStore) ClearSessionStore() {
	sds.mu.Lock()
	defer sds.mu.Unlock()

	sds.sessionStore = make(map[string]sessionStoreEntry)
}
