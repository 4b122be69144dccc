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
	"net/http"

	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/flint/internal/oauth/oauth2/constants"
)

// ErrorResponderInterface delivers authorization errors to the user-agent.
type ErrorResponderInterface interface {
	RespondError(w http.ResponseWriter, r *http.Request, authErr *model.AuthorizationError,
		request *model.ValidatedAuthorizeRequest, redirectConfirmed bool)
}

// ErrorResponder implements ErrorResponderInterface.
type ErrorResponder struct{}

// NewErrorResponder creates a new instance of ErrorResponder.
func NewErrorResponder() ErrorResponderInterface {
	return &ErrorResponder{}
}

// RespondError delivers an authorization error. The error goes to the
// client's redirect URI only when it is marked redirect safe AND the
// redirect URI has been confirmed against the client registration;
// anything else is rendered directly to the user-agent with a client
// error status, with no redirect performed. State is echoed on redirect
// errors exactly when the request carried it.
func (er *ErrorResponder) RespondError(w http.ResponseWriter, r *http.Request,
	authErr *model.AuthorizationError, request *model.ValidatedAuthorizeRequest,
	redirectConfirmed bool) {
	if authErr.RedirectSafe && redirectConfirmed && request != nil {
		params := map[string]string{
			constants.Error:            authErr.Code,
			constants.ErrorDescription: authErr.Description,
		}
		if request.State != "" {
			params[constants.State] = request.State
		}
		deliverToRedirectURI(w, r, request.RedirectURI, request.ResponseMode, params)
		return
	}

	writeErrorPage(w, authErr.Code, authErr.Description)
}
