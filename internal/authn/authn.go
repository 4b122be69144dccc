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

// Package authn exposes the authenticated end-user state to the rest of
// the server. The authorization endpoint consults it to decide whether an
// interactive sign-in is needed.
package authn

import (
	"net/http"
	"time"
)

// AuthenticatedUser represents the end-user session state attached to an
// incoming request.
type AuthenticatedUser struct {
	IsAuthenticated bool
	Subject         string
	AuthTime        time.Time
	Attributes      map[string]string
}

// ContextProviderInterface resolves the authenticated user for a request.
type ContextProviderInterface interface {
	CurrentUser(r *http.Request) *AuthenticatedUser
}

// CookieContextProvider resolves the authenticated user from the server
// session cookie.
type CookieContextProvider struct {
	SessionCookieName string
	Resolver          func(sessionID string) *AuthenticatedUser
}

// NewCookieContextProvider creates a new instance of CookieContextProvider.
func NewCookieContextProvider(cookieName string,
	resolver func(sessionID string) *AuthenticatedUser) ContextProviderInterface {
	return &CookieContextProvider{
		SessionCookieName: cookieName,
		Resolver:          resolver,
	}
}

// CurrentUser returns the authenticated user for the request, or an
// unauthenticated user when no valid session is present.
func (cp *CookieContextProvider) CurrentUser(r *http.Request) *AuthenticatedUser {
	cookie, err := r.Cookie(cp.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return &AuthenticatedUser{IsAuthenticated: false}
	}
	if cp.Resolver == nil {
		return &AuthenticatedUser{IsAuthenticated: false}
	}
	user := cp.Resolver(cookie.Value)
	if user == nil {
		return &AuthenticatedUser{IsAuthenticated: false}
	}
	return user
}
