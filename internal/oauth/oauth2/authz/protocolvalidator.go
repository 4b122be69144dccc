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

package authz

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/flint/internal/oauth/oauth2/constants"
	"github.com/asgardeo/flint/internal/system/utils"
)

// ProtocolValidatorInterface validates the syntactic shape of an
// authorization request against the protocol rules, without consulting any
// client registration.
type ProtocolValidatorInterface interface {
	ValidateRequest(msg *model.OAuthMessage) (*model.ValidatedAuthorizeRequest, *model.AuthorizationError)
}

// ProtocolValidator implements ProtocolValidatorInterface.
type ProtocolValidator struct{}

// NewProtocolValidator creates a new instance of ProtocolValidator.
func NewProtocolValidator() ProtocolValidatorInterface {
	return &ProtocolValidator{}
}

// responseTypeFlows maps each supported response_type value, with its
// components sorted, to the authorization flow it selects. Anything outside
// this map is unsupported.
var responseTypeFlows = map[string]constants.Flow{
	"code":                constants.FlowCode,
	"token":               constants.FlowImplicit,
	"id_token":            constants.FlowImplicit,
	"id_token token":      constants.FlowImplicit,
	"code id_token":       constants.FlowHybrid,
	"code token":          constants.FlowHybrid,
	"code id_token token": constants.FlowHybrid,
}

// ValidateRequest checks the request parameters in a fixed order and stops at
// the first failure. Errors raised before the redirect URI is known to be
// syntactically sound are never redirect safe.
func (pv *ProtocolValidator) ValidateRequest(msg *model.OAuthMessage) (
	*model.ValidatedAuthorizeRequest, *model.AuthorizationError) {
	clientID := msg.Params[constants.ClientID]
	if clientID == "" {
		return nil, &model.AuthorizationError{
			Code:        constants.ErrorInvalidRequest,
			Description: "Missing client_id parameter",
		}
	}

	redirectURI := msg.Params[constants.RedirectURI]
	if redirectURI == "" {
		return nil, &model.AuthorizationError{
			Code:        constants.ErrorInvalidRequest,
			Description: "Missing redirect_uri parameter",
		}
	}
	parsedRedirectURI, err := utils.ParseURL(redirectURI)
	if err != nil || !utils.IsAbsoluteURI(redirectURI) {
		return nil, &model.AuthorizationError{
			Code:        constants.ErrorInvalidRequest,
			Description: "redirect_uri must be an absolute URI",
		}
	}
	if parsedRedirectURI.Fragment != "" {
		return nil, &model.AuthorizationError{
			Code:        constants.ErrorInvalidRequest,
			Description: "redirect_uri must not contain a fragment component",
		}
	}

	// From here on the redirect URI is syntactically sound, so errors may be
	// delivered to it once the orchestrator confirms it against the client
	// registration.
	responseType := msg.Params[constants.ResponseType]
	if responseType == "" {
		return nil, &model.AuthorizationError{
			Code:         constants.ErrorInvalidRequest,
			Description:  "Missing response_type parameter",
			RedirectSafe: true,
		}
	}
	flow, normalizedResponseType, ok := resolveFlow(responseType)
	if !ok {
		return nil, &model.AuthorizationError{
			Code:         constants.ErrorUnsupportedResponseType,
			Description:  "Unsupported response type: " + responseType,
			RedirectSafe: true,
		}
	}

	scopes := utils.ParseScopes(msg.Params[constants.Scope])
	if len(scopes) == 0 {
		return nil, &model.AuthorizationError{
			Code:         constants.ErrorInvalidRequest,
			Description:  "Missing scope parameter",
			RedirectSafe: true,
		}
	}
	isOpenID := containsScope(scopes, constants.ScopeOpenID)

	includesIDToken := strings.Contains(normalizedResponseType, string(constants.ResponseTypeIDToken))
	if includesIDToken && !isOpenID {
		return nil, &model.AuthorizationError{
			Code:         constants.ErrorInvalidRequest,
			Description:  "The openid scope is required to request an id_token",
			RedirectSafe: true,
		}
	}

	nonce := msg.Params[constants.Nonce]
	if includesIDToken && nonce == "" {
		return nil, &model.AuthorizationError{
			Code:         constants.ErrorInvalidRequest,
			Description:  "The nonce parameter is required when requesting an id_token",
			RedirectSafe: true,
		}
	}

	tokenBearing := flow != constants.FlowCode
	responseMode, authErr := resolveResponseMode(msg.Params[constants.ResponseModeParm], tokenBearing)
	if authErr != nil {
		return nil, authErr
	}

	prompt, authErr := resolvePrompt(msg.Params[constants.PromptParm])
	if authErr != nil {
		return nil, authErr
	}

	var maxAge int64
	maxAgePresent := false
	if rawMaxAge, exists := msg.Params[constants.MaxAge]; exists && rawMaxAge != "" {
		maxAge, err = strconv.ParseInt(rawMaxAge, 10, 64)
		if err != nil || maxAge < 0 {
			return nil, &model.AuthorizationError{
				Code:         constants.ErrorInvalidRequest,
				Description:  "max_age must be a non-negative integer",
				RedirectSafe: true,
			}
		}
		maxAgePresent = true
	}

	return &model.ValidatedAuthorizeRequest{
		ClientID:      clientID,
		RedirectURI:   redirectURI,
		ResponseType:  responseType,
		Flow:          flow,
		ResponseMode:  responseMode,
		Scopes:        scopes,
		State:         msg.Params[constants.State],
		Nonce:         nonce,
		Prompt:        prompt,
		MaxAge:        maxAge,
		MaxAgePresent: maxAgePresent,
		IsOpenID:      isOpenID,
		RequestedAt:   time.Now(),
	}, nil
}

// resolveFlow normalizes a response_type value (component order is not
// significant) and maps it to its flow.
func resolveFlow(responseType string) (constants.Flow, string, bool) {
	components := strings.Fields(responseType)
	if len(components) == 0 {
		return "", "", false
	}
	sort.Strings(components)
	normalized := strings.Join(components, " ")
	flow, ok := responseTypeFlows[normalized]
	return flow, normalized, ok
}

// resolveResponseMode validates the requested response mode and applies the
// flow default when none is requested. Token-bearing responses must never be
// returned in the query component.
func resolveResponseMode(requested string, tokenBearing bool) (
	constants.ResponseMode, *model.AuthorizationError) {
	switch constants.ResponseMode(requested) {
	case "":
		if tokenBearing {
			return constants.ResponseModeFragment, nil
		}
		return constants.ResponseModeQuery, nil
	case constants.ResponseModeQuery:
		if tokenBearing {
			return "", &model.AuthorizationError{
				Code:         constants.ErrorInvalidRequest,
				Description:  "response_mode=query is not allowed for token-bearing response types",
				RedirectSafe: true,
			}
		}
		return constants.ResponseModeQuery, nil
	case constants.ResponseModeFragment:
		return constants.ResponseModeFragment, nil
	case constants.ResponseModeFormPost:
		return constants.ResponseModeFormPost, nil
	default:
		return "", &model.AuthorizationError{
			Code:         constants.ErrorInvalidRequest,
			Description:  "Unsupported response_mode: " + requested,
			RedirectSafe: true,
		}
	}
}

// resolvePrompt validates the prompt parameter. prompt=none must not be
// combined with any other prompt value.
func resolvePrompt(requested string) (constants.Prompt, *model.AuthorizationError) {
	values := strings.Fields(requested)
	if len(values) == 0 {
		return constants.PromptUnspecified, nil
	}
	seen := make(map[constants.Prompt]struct{}, len(values))
	for _, v := range values {
		p := constants.Prompt(v)
		switch p {
		case constants.PromptNone, constants.PromptLogin, constants.PromptConsent, constants.PromptSelectAccount:
			seen[p] = struct{}{}
		default:
			return "", &model.AuthorizationError{
				Code:         constants.ErrorInvalidRequest,
				Description:  "Unsupported prompt value: " + v,
				RedirectSafe: true,
			}
		}
	}
	if _, hasNone := seen[constants.PromptNone]; hasNone {
		if len(seen) > 1 {
			return "", &model.AuthorizationError{
				Code:         constants.ErrorInvalidRequest,
				Description:  "prompt=none cannot be combined with other prompt values",
				RedirectSafe: true,
			}
		}
		return constants.PromptNone, nil
	}
	// Precedence when multiple interactive prompts are requested: login wins
	// over consent, and select_account is handled as a login prompt.
	if _, ok := seen[constants.PromptLogin]; ok {
		return constants.PromptLogin, nil
	}
	if _, ok := seen[constants.PromptSelectAccount]; ok {
		return constants.PromptSelectAccount, nil
	}
	return constants.PromptConsent, nil
}

func containsScope(scopes []string, scope string) bool {
	for _, s := range scopes {
		if s == scope {
			return true
		}
	}
	return false
}
