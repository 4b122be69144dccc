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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/store"
	oauth2const "github.com/asgardeo/flint/internal/oauth/oauth2/constants"
	"github.com/asgardeo/flint/internal/oauth/token"
	"github.com/asgardeo/flint/internal/system/config"
	"github.com/asgardeo/flint/internal/system/log"
	"github.com/asgardeo/flint/internal/system/utils"
)

// ResponseBuilderInterface assembles the successful authorization response
// for a completed request.
type ResponseBuilderInterface interface {
	BuildResponse(request *model.ValidatedAuthorizeRequest, subject string,
		authTime time.Time) (*model.AuthorizationResponse, error)
}

// ResponseBuilder implements ResponseBuilderInterface.
type ResponseBuilder struct {
	CodeStore   store.AuthorizationCodeStoreInterface
	TokenIssuer token.TokenIssuerInterface
}

// NewResponseBuilder creates a new instance of ResponseBuilder.
func NewResponseBuilder(codeStore store.AuthorizationCodeStoreInterface,
	tokenIssuer token.TokenIssuerInterface) ResponseBuilderInterface {
	return &ResponseBuilder{
		CodeStore:   codeStore,
		TokenIssuer: tokenIssuer,
	}
}

// BuildResponse assembles the response parameters for the request's flow.
// The state parameter is echoed byte-for-byte when the request carried one,
// and never added when it did not. The flow switch is exhaustive; an
// unknown flow is a programming error, not a client error.
func (rb *ResponseBuilder) BuildResponse(request *model.ValidatedAuthorizeRequest, subject string,
	authTime time.Time) (*model.AuthorizationResponse, error) {
	params := make(map[string]string)

	switch request.Flow {
	case oauth2const.FlowCode:
		code, err := rb.issueAuthorizationCode(request, subject)
		if err != nil {
			return nil, err
		}
		params[oauth2const.Code] = code
	case oauth2const.FlowImplicit:
		if err := rb.addTokenParams(params, request, subject, authTime); err != nil {
			return nil, err
		}
	case oauth2const.FlowHybrid:
		code, err := rb.issueAuthorizationCode(request, subject)
		if err != nil {
			return nil, err
		}
		params[oauth2const.Code] = code
		if err := rb.addTokenParams(params, request, subject, authTime); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported authorization flow: %s", request.Flow)
	}

	if request.State != "" {
		params[oauth2const.State] = request.State
	}

	return &model.AuthorizationResponse{
		RedirectURI: request.RedirectURI,
		Mode:        request.ResponseMode,
		Params:      params,
	}, nil
}

// issueAuthorizationCode mints a single-use authorization code and persists
// it in the active state.
func (rb *ResponseBuilder) issueAuthorizationCode(request *model.ValidatedAuthorizeRequest,
	subject string) (string, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ResponseBuilder"))

	code, err := utils.GenerateRandomSecret(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate authorization code: %w", err)
	}

	validityPeriod := config.GetFlintRuntime().Config.OAuth.AuthorizationCode.ValidityPeriod
	if validityPeriod <= 0 {
		validityPeriod = 300
	}

	now := time.Now()
	authzCode := model.AuthorizationCode{
		CodeID:           utils.GenerateUUID(),
		Code:             code,
		ClientID:         request.ClientID,
		RedirectURI:      request.RedirectURI,
		AuthorizedUserID: subject,
		Nonce:            request.Nonce,
		TimeCreated:      now,
		ExpiryTime:       now.Add(time.Duration(validityPeriod) * time.Second),
		Scopes:           utils.JoinScopes(request.Scopes),
		State:            constants.AuthCodeStateActive,
	}

	if err := rb.CodeStore.InsertAuthorizationCode(authzCode); err != nil {
		logger.Error("Failed to persist authorization code", log.Error(err))
		return "", fmt.Errorf("failed to persist authorization code: %w", err)
	}
	return code, nil
}

// addTokenParams issues the tokens selected by the response_type components
// and adds them to the response parameters.
func (rb *ResponseBuilder) addTokenParams(params map[string]string,
	request *model.ValidatedAuthorizeRequest, subject string, authTime time.Time) error {
	includesToken := responseTypeIncludes(request.ResponseType, oauth2const.ResponseTypeToken)
	includesIDToken := responseTypeIncludes(request.ResponseType, oauth2const.ResponseTypeIDToken)

	accessToken := ""
	if includesToken {
		issued, expiresIn, err := rb.TokenIssuer.IssueAccessToken(subject, request.ClientID, request.Scopes)
		if err != nil {
			return err
		}
		accessToken = issued
		params[oauth2const.AccessToken] = issued
		params[oauth2const.TokenType] = oauth2const.TokenTypeBearer
		params[oauth2const.ExpiresIn] = strconv.FormatInt(expiresIn, 10)
		params[oauth2const.Scope] = utils.JoinScopes(request.Scopes)
	}

	if includesIDToken {
		idToken, err := rb.TokenIssuer.IssueIDToken(subject, request.ClientID, request.Nonce,
			accessToken, authTime)
		if err != nil {
			return err
		}
		params[oauth2const.IDToken] = idToken
	}
	return nil
}

// responseTypeIncludes reports whether the response_type value contains the
// given component.
func responseTypeIncludes(responseType string, component oauth2const.ResponseTypeValue) bool {
	for _, part := range strings.Fields(responseType) {
		if part == string(component) {
			return true
		}
	}
	return false
}
