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

// Package model defines the data structures for OAuth2 authorization.
package model

import (
	"time"

	"github.com/asgardeo/flint/internal/oauth/oauth2/constants"
)

// OAuthMessage represents an incoming request to the authorize endpoint,
// with query and body parameters merged per HTTP method.
type OAuthMessage struct {
	RequestType   string
	Params        map[string]string
	SignInKey     string
	SignInConsent bool
}

// ValidatedAuthorizeRequest is an authorization request that has passed
// protocol and client validation. It is treated as immutable downstream;
// stages read it but never modify it.
type ValidatedAuthorizeRequest struct {
	ClientID      string
	RedirectURI   string
	ResponseType  string
	Flow          constants.Flow
	ResponseMode  constants.ResponseMode
	Scopes        []string
	State         string
	Nonce         string
	Prompt        constants.Prompt
	MaxAge        int64
	MaxAgePresent bool
	IsOpenID      bool
	RequestedAt   time.Time
}

// AuthorizationError describes a failed authorization request.
// RedirectSafe means the error may be delivered to the client's redirect
// URI, but only once the redirect URI has been confirmed against the
// client registration; until then the error is shown directly to the
// user-agent.
type AuthorizationError struct {
	Code         string
	Description  string
	RedirectSafe bool
}

// Error implements the error interface.
func (ae *AuthorizationError) Error() string {
	if ae.Description == "" {
		return ae.Code
	}
	return ae.Code + ": " + ae.Description
}

// InteractionOutcome enumerates the decisions the interaction resolver can reach.
type InteractionOutcome int

// Interaction resolver outcomes.
const (
	// InteractionComplete means the user is authenticated and has granted
	// consent; the response builder may proceed.
	InteractionComplete InteractionOutcome = iota
	// InteractionSignInRequired means the user-agent must be sent to the
	// gate client's sign-in page.
	InteractionSignInRequired
	// InteractionConsentRequired means the user-agent must be sent to the
	// gate client's consent page.
	InteractionConsentRequired
	// InteractionDenied means interaction is needed but prompt=none forbids
	// it, or the user refused consent.
	InteractionDenied
)

// InteractionResult is the outcome of resolving the end-user interaction
// state for a validated request.
type InteractionResult struct {
	Outcome     InteractionOutcome
	Subject     string
	AuthTime    time.Time
	SignInKey   string
	DeniedError *AuthorizationError
}

// AuthorizationResponse carries the successful response parameters before
// they are shaped by the response mode.
type AuthorizationResponse struct {
	RedirectURI string
	Mode        constants.ResponseMode
	Params      map[string]string
}

// AuthorizationCode represents the authorization code.
type AuthorizationCode struct {
	CodeID           string
	Code             string
	ClientID         string
	RedirectURI      string
	AuthorizedUserID string
	Nonce            string
	TimeCreated      time.Time
	ExpiryTime       time.Time
	Scopes           string
	State            string
}
