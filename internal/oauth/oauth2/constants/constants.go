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

// Package constants defines constants used across the OAuth2 module.
package constants

// OAuth2 request parameters.
const (
	ClientID         = "client_id"
	RedirectURI      = "redirect_uri"
	Scope            = "scope"
	Code             = "code"
	ResponseType     = "response_type"
	ResponseModeParm = "response_mode"
	State            = "state"
	Nonce            = "nonce"
	PromptParm       = "prompt"
	MaxAge           = "max_age"
	AccessToken      = "access_token"
	IDToken          = "id_token"
	TokenType        = "token_type"
	ExpiresIn        = "expires_in"
	Error            = "error"
	ErrorDescription = "error_description"
)

// Server OAuth constants.
const (
	SignInKey        = "signInKey"
	SignInKeyConsent = "signInKeyConsent"
)

// OAuth2 endpoints.
const (
	OAuth2AuthorizationEndpoint = "/oauth2/authorize"
)

// ResponseType represents an OAuth2 response type value component.
type ResponseTypeValue string

// OAuth2 response type components.
const (
	ResponseTypeCode    ResponseTypeValue = "code"
	ResponseTypeToken   ResponseTypeValue = "token"
	ResponseTypeIDToken ResponseTypeValue = "id_token"
)

// Flow represents the authorization grant style selected by the response type.
type Flow string

// Authorization flows.
const (
	FlowCode     Flow = "code"
	FlowImplicit Flow = "implicit"
	FlowHybrid   Flow = "hybrid"
)

// ResponseMode represents how response parameters are attached to the redirect.
type ResponseMode string

// OAuth2 response modes.
const (
	ResponseModeQuery    ResponseMode = "query"
	ResponseModeFragment ResponseMode = "fragment"
	ResponseModeFormPost ResponseMode = "form_post"
)

// Prompt represents the OIDC prompt parameter values.
type Prompt string

// OIDC prompt values.
const (
	PromptUnspecified   Prompt = ""
	PromptNone          Prompt = "none"
	PromptLogin         Prompt = "login"
	PromptConsent       Prompt = "consent"
	PromptSelectAccount Prompt = "select_account"
)

// ScopeOpenID is the scope that marks a request as an OIDC request.
const ScopeOpenID = "openid"

// OAuth2 token types.
const (
	TokenTypeBearer = "Bearer"
)

// OAuth2 error codes.
const (
	ErrorInvalidRequest          = "invalid_request"
	ErrorInvalidClient           = "invalid_client"
	ErrorUnauthorizedClient      = "unauthorized_client"
	ErrorAccessDenied            = "access_denied"
	ErrorUnsupportedResponseType = "unsupported_response_type"
	ErrorInvalidScope            = "invalid_scope"
	ErrorServerError             = "server_error"
	ErrorLoginRequired           = "login_required"
	ErrorInteractionRequired     = "interaction_required"
	ErrorConsentRequired         = "consent_required"
)
