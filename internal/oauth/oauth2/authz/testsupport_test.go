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
	"time"

	appconstants "github.com/asgardeo/flint/internal/application/constants"
	appmodel "github.com/asgardeo/flint/internal/application/model"
	appservice "github.com/asgardeo/flint/internal/application/service"
	"github.com/asgardeo/flint/internal/authn"
)

// fakeApplicationService serves applications from a map.
type fakeApplicationService struct {
	apps map[string]*appmodel.Application
}

func (fs *fakeApplicationService) GetOAuthApplication(clientID string) (*appmodel.Application, error) {
	app, ok := fs.apps[clientID]
	if !ok {
		return nil, appconstants.ErrApplicationNotFound
	}
	return app, nil
}

func (fs *fakeApplicationService) CreateApplication(app *appmodel.Application) (*appmodel.Application, error) {
	fs.apps[app.ClientID] = app
	return app, nil
}

// fakeApplicationProvider hands out a fakeApplicationService.
type fakeApplicationProvider struct {
	service *fakeApplicationService
}

func (fp *fakeApplicationProvider) GetApplicationService() appservice.ApplicationServiceInterface {
	return fp.service
}

func newFakeApplicationProvider(apps ...*appmodel.Application) *fakeApplicationProvider {
	appMap := make(map[string]*appmodel.Application)
	for _, app := range apps {
		appMap[app.ClientID] = app
	}
	return &fakeApplicationProvider{service: &fakeApplicationService{apps: appMap}}
}

// fakeTokenIssuer returns fixed token values and records the auth time it
// was last asked to stamp.
type fakeTokenIssuer struct {
	lastAuthTime time.Time
}

func (fi *fakeTokenIssuer) IssueAccessToken(_, _ string, _ []string) (string, int64, error) {
	return "test-access-token", 3600, nil
}

func (fi *fakeTokenIssuer) IssueIDToken(_, _, nonce, _ string, authTime time.Time) (string, error) {
	fi.lastAuthTime = authTime
	return "test-id-token-" + nonce, nil
}

// fakeAuthnProvider returns a fixed authenticated user.
type fakeAuthnProvider struct {
	user *authn.AuthenticatedUser
}

func (fp *fakeAuthnProvider) CurrentUser(_ *http.Request) *authn.AuthenticatedUser {
	if fp.user == nil {
		return &authn.AuthenticatedUser{IsAuthenticated: false}
	}
	return fp.user
}

func testApplication() *appmodel.Application {
	return &appmodel.Application{
		ID:       "test-app-id",
		Name:     "Test Application",
		ClientID: "test-client-id",
		RedirectURIs: []string{
			"https://client.example.com/callback",
		},
		AllowedResponseTypes: []string{"code", "token", "id_token", "code id_token"},
		AllowedGrantTypes:    []string{"authorization_code", "implicit"},
		AllowedScopes:        []string{"openid", "profile", "email"},
	}
}
