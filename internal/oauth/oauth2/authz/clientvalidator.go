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
	"errors"

	appconstants "github.com/asgardeo/flint/internal/application/constants"
	appmodel "github.com/asgardeo/flint/internal/application/model"
	appprovider "github.com/asgardeo/flint/internal/application/provider"
	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/flint/internal/oauth/oauth2/constants"
	"github.com/asgardeo/flint/internal/system/log"
)

// ClientValidatorInterface checks a protocol-valid authorization request
// against the client registration.
type ClientValidatorInterface interface {
	ValidateClient(request *model.ValidatedAuthorizeRequest) (*appmodel.Application, *model.AuthorizationError)
}

// ClientValidator implements ClientValidatorInterface.
type ClientValidator struct {
	ApplicationProvider appprovider.ApplicationProviderInterface
}

// NewClientValidator creates a new instance of ClientValidator.
func NewClientValidator() ClientValidatorInterface {
	return &ClientValidator{
		ApplicationProvider: appprovider.NewApplicationProvider(),
	}
}

// ValidateClient resolves the client registration and verifies the redirect
// URI, response type and scopes against it. Unknown client and unregistered
// redirect URI errors are never redirect safe; once both are confirmed the
// remaining errors are delivered to the redirect URI.
func (cv *ClientValidator) ValidateClient(request *model.ValidatedAuthorizeRequest) (
	*appmodel.Application, *model.AuthorizationError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ClientValidator"))

	appService := cv.ApplicationProvider.GetApplicationService()
	oauthApp, err := appService.GetOAuthApplication(request.ClientID)
	if err != nil {
		if errors.Is(err, appconstants.ErrApplicationNotFound) {
			return nil, &model.AuthorizationError{
				Code:        constants.ErrorInvalidClient,
				Description: "Unknown client_id",
			}
		}
		logger.Error("Failed to retrieve application", log.Error(err),
			log.String(log.LoggerKeyClientID, log.MaskString(request.ClientID)))
		return nil, &model.AuthorizationError{
			Code:        constants.ErrorServerError,
			Description: "Failed to resolve the client registration",
		}
	}

	// Byte-exact match against the registered redirect URIs.
	if !oauthApp.IsValidRedirectURI(request.RedirectURI) {
		return nil, &model.AuthorizationError{
			Code:        constants.ErrorInvalidRequest,
			Description: "The redirect_uri does not match any registered redirect URI",
		}
	}

	if !oauthApp.IsAllowedResponseType(request.ResponseType) {
		return oauthApp, &model.AuthorizationError{
			Code:         constants.ErrorUnauthorizedClient,
			Description:  "The client is not authorized to use this response type",
			RedirectSafe: true,
		}
	}

	if !oauthApp.AreScopesAllowed(request.Scopes) {
		return oauthApp, &model.AuthorizationError{
			Code:         constants.ErrorInvalidScope,
			Description:  "The requested scope exceeds the client's allowed scopes",
			RedirectSafe: true,
		}
	}

	return oauthApp, nil
}
