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
	"html/template"
	"net/http"

	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/flint/internal/oauth/oauth2/constants"
	"github.com/asgardeo/flint/internal/system/log"
	"github.com/asgardeo/flint/internal/system/utils"
)

// formPostPage is the self-submitting document returned for
// response_mode=form_post. Parameter values are sent as hidden form fields
// via an automatic POST to the client's redirect URI; they never appear in
// the URL.
var formPostPage = template.Must(template.New("form_post").Parse(`<!DOCTYPE html>
<html>
<head><title>Submit This Form</title></head>
<body onload="document.forms[0].submit()">
<form method="post" action="{{ .RedirectURI }}">
{{ range $key, $value := .Params }}<input type="hidden" name="{{ $key }}" value="{{ $value }}"/>
{{ end }}<noscript><button type="submit">Continue</button></noscript>
</form>
</body>
</html>`))

// formPostPageData is the template data for formPostPage.
type formPostPageData struct {
	RedirectURI string
	Params      map[string]string
}

// WriteAuthorizationResponse delivers response parameters to the redirect
// URI in the selected response mode.
func WriteAuthorizationResponse(w http.ResponseWriter, r *http.Request,
	response *model.AuthorizationResponse) {
	deliverToRedirectURI(w, r, response.RedirectURI, response.Mode, response.Params)
}

// deliverToRedirectURI shapes the parameters per the response mode and sends
// the user-agent to the redirect URI.
func deliverToRedirectURI(w http.ResponseWriter, r *http.Request, redirectURI string,
	mode constants.ResponseMode, params map[string]string) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeResponder"))

	switch mode {
	case constants.ResponseModeFragment:
		target, err := utils.GetURIWithFragmentParams(redirectURI, params)
		if err != nil {
			logger.Error("Failed to construct fragment redirect URI", log.Error(err))
			writeErrorPage(w, constants.ErrorServerError, "Failed to construct the redirect URI")
			return
		}
		http.Redirect(w, r, target, http.StatusFound)
	case constants.ResponseModeFormPost:
		w.Header().Set("Content-Type", "text/html;charset=UTF-8")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		if err := formPostPage.Execute(w, formPostPageData{
			RedirectURI: redirectURI,
			Params:      params,
		}); err != nil {
			logger.Error("Failed to render form post page", log.Error(err))
		}
	default:
		target, err := utils.GetURIWithQueryParams(redirectURI, params)
		if err != nil {
			logger.Error("Failed to construct query redirect URI", log.Error(err))
			writeErrorPage(w, constants.ErrorServerError, "Failed to construct the redirect URI")
			return
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}

// writeErrorPage renders a minimal error document directly to the
// user-agent. Used whenever an error cannot be delivered to a confirmed
// redirect URI.
func writeErrorPage(w http.ResponseWriter, errorCode, errorDescription string) {
	w.Header().Set("Content-Type", "text/html;charset=UTF-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>Authorization Error</title></head>"+
		"<body><h1>Authorization Error</h1><p>%s</p><p>%s</p></body></html>",
		template.HTMLEscapeString(errorCode), template.HTMLEscapeString(errorDescription))
}
