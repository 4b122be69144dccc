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

// Package model defines the data structures for user consent management.
package model

import "time"

// ConsentGrant records the scopes a user has approved for a client.
type ConsentGrant struct {
	GrantID   string    `bson:"grant_id"`
	Subject   string    `bson:"subject"`
	ClientID  string    `bson:"client_id"`
	Scopes    []string  `bson:"scopes"`
	GrantedAt time.Time `bson:"granted_at"`
}

// Covers reports whether the grant covers every requested scope.
func (cg *ConsentGrant) Covers(scopes []string) bool {
	granted := make(map[string]struct{}, len(cg.Scopes))
	for _, s := range cg.Scopes {
		granted[s] = struct{}{}
	}
	for _, s := range scopes {
		if _, ok := granted[s]; !ok {
			return false
		}
	}
	return true
}
