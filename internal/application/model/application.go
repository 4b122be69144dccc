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

// Package model defines the data structures for registered OAuth2 applications.
package model

import (
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Application represents a registered OAuth2 client application.
type Application struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	ClientID             string   `json:"client_id"`
	HashedClientSecret   string   `json:"-"`
	RedirectURIs         []string `json:"redirect_uris"`
	AllowedResponseTypes []string `json:"allowed_response_types"`
	AllowedGrantTypes    []string `json:"allowed_grant_types"`
	AllowedScopes        []string `json:"allowed_scopes"`
}

// IsValidRedirectURI reports whether the given redirect URI exactly matches
// one of the registered redirect URIs. Matching is byte-exact; no
// normalization, prefix or wildcard matching is performed.
func (app *Application) IsValidRedirectURI(redirectURI string) bool {
	for _, uri := range app.RedirectURIs {
		if uri == redirectURI {
			return true
		}
	}
	return false
}

// IsAllowedResponseType reports whether the application is permitted to use
// the given response_type value. Component order is not significant, so
// "id_token code" matches a registered "code id_token".
func (app *Application) IsAllowedResponseType(responseType string) bool {
	requested := normalizeResponseType(responseType)
	for _, rt := range app.AllowedResponseTypes {
		if normalizeResponseType(rt) == requested {
			return true
		}
	}
	return false
}

func normalizeResponseType(responseType string) string {
	components := strings.Fields(responseType)
	sort.Strings(components)
	return strings.Join(components, " ")
}

// AreScopesAllowed reports whether every requested scope is within the
// application's allowed scopes. An application with no configured scopes
// allows any scope.
func (app *Application) AreScopesAllowed(scopes []string) bool {
	if len(app.AllowedScopes) == 0 {
		return true
	}
	allowed := make(map[string]struct{}, len(app.AllowedScopes))
	for _, s := range app.AllowedScopes {
		allowed[s] = struct{}{}
	}
	for _, s := range scopes {
		if _, ok := allowed[s]; !ok {
			return false
		}
	}
	return true
}

// MatchSecret compares the given plaintext client secret against the stored
// bcrypt hash.
func (app *Application) MatchSecret(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(app.HashedClientSecret), []byte(secret)) == nil
}

// HashClientSecret returns the bcrypt hash of a plaintext client secret for
// storage alongside the application record.
func HashClientSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
