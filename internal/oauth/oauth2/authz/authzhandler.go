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

// Package authz implements the OAuth2 authorization endpoint.
//
// An authorization request passes through four stages in a fixed order:
// protocol validation, client validation, interaction resolution and
// response building. The handler sequences the stages and owns the one
// rule every path obeys: nothing is ever delivered to a redirect URI that
// has not been confirmed, byte for byte, against the client registration.
package authz

import (
	"net/http"
	"time"

	appprovider "github.com/asgardeo/flint/internal/application/provider"
	"github.com/asgardeo/flint/internal/authn"
	consentmodel "github.com/asgardeo/flint/internal/oauth/consent/model"
	consentstore "github.com/asgardeo/flint/internal/oauth/consent/store"
	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/store"
	oauth2const "github.com/asgardeo/flint/internal/oauth/oauth2/constants"
	sessionmodel "github.com/asgardeo/flint/internal/oauth/session/model"
	sessionstore "github.com/asgardeo/flint/internal/oauth/session/store"
	"github.com/asgardeo/flint/internal/oauth/token"
	"github.com/asgardeo/flint/internal/system/log"
	"github.com/asgardeo/flint/internal/system/security"
	"github.com/asgardeo/flint/internal/system/utils"
)

// AuthorizeHandler sequences the authorization endpoint stages.
type AuthorizeHandler struct {
	ProtocolValidator   ProtocolValidatorInterface
	ClientValidator     ClientValidatorInterface
	InteractionResolver InteractionResolverInterface
	ResponseBuilder     ResponseBuilderInterface
	ErrorResponder      ErrorResponderInterface
	SessionStore        sessionstore.SessionDataStoreInterface
	ConsentStore        consentstore.ConsentStoreInterface
	AppProvider         appprovider.ApplicationProviderInterface
	AuthnProvider       authn.ContextProviderInterface
	RateLimiter         security.RateLimiterInterface
}

// NewAuthorizeHandler creates a new instance of AuthorizeHandler.
func NewAuthorizeHandler(consentStore consentstore.ConsentStoreInterface,
	codeStore store.AuthorizationCodeStoreInterface, tokenIssuer token.TokenIssuerInterface,
	authnProvider authn.ContextProviderInterface,
	rateLimiter security.RateLimiterInterface) *AuthorizeHandler {
	return &AuthorizeHandler{
		ProtocolValidator:   NewProtocolValidator(),
		ClientValidator:     NewClientValidator(),
		InteractionResolver: NewInteractionResolver(consentStore),
		ResponseBuilder:     NewResponseBuilder(codeStore, tokenIssuer),
		ErrorResponder:      NewErrorResponder(),
		SessionStore:        sessionstore.GetSessionDataStore(),
		ConsentStore:        consentStore,
		AppProvider:         appprovider.NewApplicationProvider(),
		AuthnProvider:       authnProvider,
		RateLimiter:         rateLimiter,
	}
}

// HandleAuthorizeRequest handles the OAuth2 authorization request.
func (ah *AuthorizeHandler) HandleAuthorizeRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))

	msg, err := getOAuthMessage(r)
	if err != nil {
		logger.Error("Failed to construct OAuth message", log.Error(err))
		utils.WriteJSONError(w, oauth2const.ErrorInvalidRequest,
			"Invalid authorization request", http.StatusBadRequest, nil)
		return
	}

	if ah.RateLimiter != nil {
		identifier := msg.Params[oauth2const.ClientID]
		if identifier == "" {
			identifier = r.RemoteAddr
		}
		if !ah.RateLimiter.Allow(identifier) {
			utils.WriteJSONError(w, oauth2const.ErrorInvalidRequest,
				"Too many authorization requests", http.StatusTooManyRequests, nil)
			return
		}
	}

	switch msg.RequestType {
	case constants.TypeInitialAuthorizationRequest:
		ah.handleInitialAuthorizationRequest(msg, w, r)
	case constants.TypeSignInResponse, constants.TypeConsentResponse:
		ah.handleResumedRequest(msg, w, r)
	default:
		utils.WriteJSONError(w, oauth2const.ErrorInvalidRequest,
			"Invalid authorization request", http.StatusBadRequest, nil)
	}
}

// getOAuthMessage builds the OAuthMessage from the request. GET requests
// carry parameters in the query component, POST requests in the
// form-encoded body. A sign-in key marks the request as a gate client
// round trip rather than a fresh authorization request.
func getOAuthMessage(r *http.Request) (*model.OAuthMessage, error) {
	params := make(map[string]string)

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for key, values := range r.PostForm {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}
	}
	for key, values := range r.URL.Query() {
		if _, exists := params[key]; !exists && len(values) > 0 {
			params[key] = values[0]
		}
	}

	msg := &model.OAuthMessage{
		RequestType: constants.TypeInitialAuthorizationRequest,
		Params:      params,
	}
	if signInKey := params[oauth2const.SignInKey]; signInKey != "" {
		msg.SignInKey = signInKey
		msg.RequestType = constants.TypeSignInResponse
	}
	if signInKey := params[oauth2const.SignInKeyConsent]; signInKey != "" {
		msg.SignInKey = signInKey
		msg.SignInConsent = true
		msg.RequestType = constants.TypeConsentResponse
	}
	return msg, nil
}

// handleInitialAuthorizationRequest runs the validation stages on a fresh
// authorization request and either completes it or hands the user-agent to
// the gate client.
func (ah *AuthorizeHandler) handleInitialAuthorizationRequest(msg *model.OAuthMessage,
	w http.ResponseWriter, r *http.Request) {
	request, authErr := ah.ProtocolValidator.ValidateRequest(msg)
	if authErr != nil {
		// A protocol error can only travel to the redirect URI once the
		// registration confirms it; the validator itself never looks the
		// client up, so confirm here.
		errRequest, confirmed := ah.confirmRedirectForError(msg)
		ah.ErrorResponder.RespondError(w, r, authErr, errRequest, confirmed)
		return
	}

	_, authErr = ah.ClientValidator.ValidateClient(request)
	if authErr != nil {
		// The client validator raises redirect-safe errors only after the
		// redirect URI matched the registration.
		ah.ErrorResponder.RespondError(w, r, authErr, request, authErr.RedirectSafe)
		return
	}

	user := ah.AuthnProvider.CurrentUser(r)
	ah.resolveAndRespond(w, r, request, user)
}

// handleResumedRequest completes an authorization request parked while the
// user signed in or granted consent at the gate client.
func (ah *AuthorizeHandler) handleResumedRequest(msg *model.OAuthMessage,
	w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))

	found, sessionData := ah.SessionStore.ConsumeSession(msg.SignInKey)
	if !found || sessionData.AuthorizeRequest == nil {
		utils.WriteJSONError(w, oauth2const.ErrorInvalidRequest,
			"Unknown or expired sign-in key", http.StatusBadRequest, nil)
		return
	}
	request := sessionData.AuthorizeRequest

	if msg.SignInConsent {
		ah.completeConsentResponse(msg, w, r, request, &sessionData)
		return
	}

	subject := msg.Params["assertion"]
	if subject == "" {
		logger.Debug("Sign-in response without an authenticated subject")
		ah.ErrorResponder.RespondError(w, r, &model.AuthorizationError{
			Code:         oauth2const.ErrorAccessDenied,
			Description:  "User authentication failed",
			RedirectSafe: true,
		}, request, true)
		return
	}

	user := &authn.AuthenticatedUser{
		IsAuthenticated: true,
		Subject:         subject,
		AuthTime:        time.Now(),
	}
	ah.resolveAndRespond(w, r, request, user)
}

// completeConsentResponse applies the user's consent decision and finishes
// the flow.
func (ah *AuthorizeHandler) completeConsentResponse(msg *model.OAuthMessage,
	w http.ResponseWriter, r *http.Request, request *model.ValidatedAuthorizeRequest,
	sessionData *sessionmodel.SessionData) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))

	if msg.Params["decision"] != "approve" {
		ah.ErrorResponder.RespondError(w, r, &model.AuthorizationError{
			Code:         oauth2const.ErrorAccessDenied,
			Description:  "The user denied the authorization request",
			RedirectSafe: true,
		}, request, true)
		return
	}

	subject := sessionData.LoggedInSubject
	if subject == "" {
		subject = msg.Params["assertion"]
	}
	if subject == "" {
		ah.ErrorResponder.RespondError(w, r, &model.AuthorizationError{
			Code:         oauth2const.ErrorAccessDenied,
			Description:  "User authentication failed",
			RedirectSafe: true,
		}, request, true)
		return
	}

	grant := &consentmodel.ConsentGrant{
		GrantID:   utils.GenerateUUID(),
		Subject:   subject,
		ClientID:  request.ClientID,
		Scopes:    request.Scopes,
		GrantedAt: time.Now(),
	}
	if err := ah.ConsentStore.SaveGrant(r.Context(), grant); err != nil {
		logger.Error("Failed to persist consent grant", log.Error(err))
		ah.ErrorResponder.RespondError(w, r, &model.AuthorizationError{
			Code:         oauth2const.ErrorServerError,
			Description:  "Failed to record the consent decision",
			RedirectSafe: true,
		}, request, true)
		return
	}

	authTime := sessionData.AuthTime
	if authTime.IsZero() {
		authTime = time.Now()
	}
	ah.buildAndRespond(w, r, request, subject, authTime)
}

// resolveAndRespond runs interaction resolution for a validated request and
// acts on the outcome.
func (ah *AuthorizeHandler) resolveAndRespond(w http.ResponseWriter, r *http.Request,
	request *model.ValidatedAuthorizeRequest, user *authn.AuthenticatedUser) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))

	result, err := ah.InteractionResolver.Resolve(r.Context(), request, user)
	if err != nil {
		logger.Error("Failed to resolve interaction state", log.Error(err))
		ah.ErrorResponder.RespondError(w, r, &model.AuthorizationError{
			Code:         oauth2const.ErrorServerError,
			Description:  "Failed to process the authorization request",
			RedirectSafe: true,
		}, request, true)
		return
	}

	switch result.Outcome {
	case model.InteractionComplete:
		ah.buildAndRespond(w, r, request, result.Subject, result.AuthTime)
	case model.InteractionSignInRequired:
		ah.redirectToGateClient(w, r, request, "login", oauth2const.SignInKey, result.SignInKey)
	case model.InteractionConsentRequired:
		ah.redirectToGateClient(w, r, request, "consent", oauth2const.SignInKeyConsent, result.SignInKey)
	case model.InteractionDenied:
		ah.ErrorResponder.RespondError(w, r, result.DeniedError, request, true)
	default:
		ah.ErrorResponder.RespondError(w, r, &model.AuthorizationError{
			Code:         oauth2const.ErrorServerError,
			Description:  "Failed to process the authorization request",
			RedirectSafe: true,
		}, request, true)
	}
}

// buildAndRespond assembles the successful response and delivers it in the
// request's response mode.
func (ah *AuthorizeHandler) buildAndRespond(w http.ResponseWriter, r *http.Request,
	request *model.ValidatedAuthorizeRequest, subject string, authTime time.Time) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))

	response, err := ah.ResponseBuilder.BuildResponse(request, subject, authTime)
	if err != nil {
		logger.Error("Failed to build authorization response", log.Error(err),
			log.String(log.LoggerKeyFlow, string(request.Flow)))
		ah.ErrorResponder.RespondError(w, r, &model.AuthorizationError{
			Code:         oauth2const.ErrorServerError,
			Description:  "Failed to build the authorization response",
			RedirectSafe: true,
		}, request, true)
		return
	}
	WriteAuthorizationResponse(w, r, response)
}

// redirectToGateClient sends the user-agent to a gate client page with the
// sign-in key that resumes the parked request.
func (ah *AuthorizeHandler) redirectToGateClient(w http.ResponseWriter, r *http.Request,
	request *model.ValidatedAuthorizeRequest, page, keyParam, signInKey string) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizeHandler"))

	queryParams := map[string]string{
		keyParam:             signInKey,
		oauth2const.ClientID: request.ClientID,
	}
	if len(request.Scopes) > 0 {
		queryParams[oauth2const.Scope] = utils.JoinScopes(request.Scopes)
	}

	pageURI, err := utils.GetGateClientURI(page, queryParams)
	if err != nil {
		logger.Error("Failed to construct gate client URI", log.Error(err))
		ah.ErrorResponder.RespondError(w, r, &model.AuthorizationError{
			Code:         oauth2const.ErrorServerError,
			Description:  "Failed to redirect to the " + page + " page",
			RedirectSafe: true,
		}, request, true)
		return
	}
	http.Redirect(w, r, pageURI, http.StatusFound)
}

// confirmRedirectForError checks whether a protocol-stage error may be
// delivered to the redirect URI from the raw request parameters: the client
// must be registered and the redirect URI must match byte for byte. On
// confirmation a minimal request carrying the redirect target, state and a
// redirect-only response mode is returned.
func (ah *AuthorizeHandler) confirmRedirectForError(msg *model.OAuthMessage) (
	*model.ValidatedAuthorizeRequest, bool) {
	clientID := msg.Params[oauth2const.ClientID]
	redirectURI := msg.Params[oauth2const.RedirectURI]
	if clientID == "" || redirectURI == "" {
		return nil, false
	}

	appService := ah.AppProvider.GetApplicationService()
	oauthApp, err := appService.GetOAuthApplication(clientID)
	if err != nil || oauthApp == nil {
		return nil, false
	}
	if !oauthApp.IsValidRedirectURI(redirectURI) {
		return nil, false
	}

	// Token-bearing response types must not receive parameters in the query
	// component, so fall back to the fragment when the raw response_type
	// mentions a token.
	mode := oauth2const.ResponseModeQuery
	if responseTypeIncludes(msg.Params[oauth2const.ResponseType], oauth2const.ResponseTypeToken) ||
		responseTypeIncludes(msg.Params[oauth2const.ResponseType], oauth2const.ResponseTypeIDToken) {
		mode = oauth2const.ResponseModeFragment
	}

	return &model.ValidatedAuthorizeRequest{
		ClientID:     clientID,
		RedirectURI:  redirectURI,
		ResponseMode: mode,
		State:        msg.Params[oauth2const.State],
	}, true
}
