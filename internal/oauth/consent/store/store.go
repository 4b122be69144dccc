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

// Package store provides persistence for user consent grants.
package store

import (
	"context"
	"errors"

	"github.com/asgardeo/flint/internal/oauth/consent/model"
)

// ErrConsentNotFound is returned when no consent grant exists for the
// given subject and client.
var ErrConsentNotFound = errors.New("consent grant not found")

// ConsentStoreInterface defines the persistence operations for consent grants.
type ConsentStoreInterface interface {
	GetGrant(ctx context.Context, subject, clientID string) (*model.ConsentGrant, error)
	SaveGrant(ctx context.Context, grant *model.ConsentGrant) error
	RevokeGrant(ctx context.Context, subject, clientID string) error
}
