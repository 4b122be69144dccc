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
	"context"
	"errors"
	"time"

	"github.com/asgardeo/flint/internal/authn"
	consentstore "github.com/asgardeo/flint/internal/oauth/consent/store"
	"github.com/asgardeo/flint/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/flint/internal/oauth/oauth2/constants"
	sessionmodel "github.com/asgardeo/flint/internal/oauth/session/model"
	sessionstore "github.com/asgardeo/flint/internal/oauth/session/store"
	"github.com/asgardeo/flint/internal/system/log"
	"github.com/asgardeo/flint/internal/system/utils"
)

// InteractionResolverInterface decides whether a validated authorization
// request can proceed directly, or requires sign-in or consent at the gate
// client first.
type InteractionResolverInterface interface {
	Resolve(ctx context.Context, request *model.ValidatedAuthorizeRequest,
		user *authn.AuthenticatedUser) (*model.InteractionResult, error)
}

// InteractionResolver implements InteractionResolverInterface.
type InteractionResolver struct {
	SessionStore sessionstore.SessionDataStoreInterface
	ConsentStore consentstore.ConsentStoreInterface
}

// NewInteractionResolver creates a new instance of InteractionResolver.
func NewInteractionResolver(consentStore consentstore.ConsentStoreInterface) InteractionResolverInterface {
	return &InteractionResolver{
		SessionStore: sessionstore.GetSessionDataStore(),
		ConsentStore: consentStore,
	}
}

// Resolve evaluates the end-user interaction state. When sign-in or
// consent is needed, the request is parked in the session store under a
// fresh sign-in key so the flow can resume after the gate client round
// trip. With prompt=none no interaction is permitted; the corresponding
// error is reported instead.
func (ir *InteractionResolver) Resolve(ctx context.Context, request *model.ValidatedAuthorizeRequest,
	user *authn.AuthenticatedUser) (*model.InteractionResult, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "InteractionResolver"))

	needsSignIn := ir.needsSignIn(request, user)

	if request.Prompt == constants.PromptNone {
		if needsSignIn {
			return &model.InteractionResult{
				Outcome: model.InteractionDenied,
				DeniedError: &model.AuthorizationError{
					Code:         constants.ErrorLoginRequired,
					Description:  "End-user authentication is required but prompt=none forbids interaction",
					RedirectSafe: true,
				},
			}, nil
		}
		covered, err := ir.hasConsent(ctx, request, user.Subject)
		if err != nil {
			return nil, err
		}
		if !covered {
			return &model.InteractionResult{
				Outcome: model.InteractionDenied,
				DeniedError: &model.AuthorizationError{
					Code:         constants.ErrorConsentRequired,
					Description:  "End-user consent is required but prompt=none forbids interaction",
					RedirectSafe: true,
				},
			}, nil
		}
		return &model.InteractionResult{
			Outcome:  model.InteractionComplete,
			Subject:  user.Subject,
			AuthTime: user.AuthTime,
		}, nil
	}

	if needsSignIn {
		// The sign-in round trip itself satisfies a login or select_account
		// prompt and any max_age bound; parking those demands verbatim would
		// force sign-in again on every resume.
		parked := *request
		parked.Prompt = constants.PromptUnspecified
		parked.MaxAge = 0
		parked.MaxAgePresent = false
		signInKey := ir.parkSession(&parked, "", time.Time{}, false)
		logger.Debug("Parked authorization request pending sign-in",
			log.String(log.LoggerKeySignInKey, log.MaskString(signInKey)))
		return &model.InteractionResult{
			Outcome:   model.InteractionSignInRequired,
			SignInKey: signInKey,
		}, nil
	}

	covered, err := ir.hasConsent(ctx, request, user.Subject)
	if err != nil {
		return nil, err
	}
	if !covered || request.Prompt == constants.PromptConsent {
		signInKey := ir.parkSession(request, user.Subject, user.AuthTime, true)
		logger.Debug("Parked authorization request pending consent",
			log.String(log.LoggerKeySignInKey, log.MaskString(signInKey)))
		return &model.InteractionResult{
			Outcome:   model.InteractionConsentRequired,
			Subject:   user.Subject,
			SignInKey: signInKey,
		}, nil
	}

	return &model.InteractionResult{
		Outcome:  model.InteractionComplete,
		Subject:  user.Subject,
		AuthTime: user.AuthTime,
	}, nil
}

// needsSignIn reports whether an interactive sign-in is required. A login
// or select_account prompt always forces re-authentication, and so does a
// session older than the requested max_age. max_age=0 demands a freshly
// established session, which an existing one can never satisfy.
func (ir *InteractionResolver) needsSignIn(request *model.ValidatedAuthorizeRequest,
	user *authn.AuthenticatedUser) bool {
	if user == nil || !user.IsAuthenticated {
		return true
	}
	if request.Prompt == constants.PromptLogin || request.Prompt == constants.PromptSelectAccount {
		return true
	}
	if request.MaxAgePresent {
		if request.MaxAge == 0 {
			return true
		}
		age := time.Since(user.AuthTime)
		if age > time.Duration(request.MaxAge)*time.Second {
			return true
		}
	}
	return false
}

// hasConsent reports whether an existing grant covers every requested scope.
func (ir *InteractionResolver) hasConsent(ctx context.Context,
	request *model.ValidatedAuthorizeRequest, subject string) (bool, error) {
	if len(request.Scopes) == 0 {
		return true, nil
	}
	grant, err := ir.ConsentStore.GetGrant(ctx, subject, request.ClientID)
	if err != nil {
		if errors.Is(err, consentstore.ErrConsentNotFound) {
			return false, nil
		}
		return false, err
	}
	return grant.Covers(request.Scopes), nil
}

// parkSession stores the request under a fresh sign-in key and returns the key.
func (ir *InteractionResolver) parkSession(request *model.ValidatedAuthorizeRequest,
	subject string, authTime time.Time, consentPending bool) string {
	signInKey := utils.GenerateUUID()
	ir.SessionStore.AddSession(signInKey, sessionmodel.SessionData{
		AuthorizeRequest: request,
		AuthTime:         authTime,
		LoggedInSubject:  subject,
		ConsentPending:   consentPending,
	})
	return signInKey
}
