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

package utils

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/flint/internal/system/config"
)

type HTTPUtilTestSuite struct {
	suite.Suite
}

func TestHTTPUtilSuite(t *testing.T) {
	suite.Run(t, new(HTTPUtilTestSuite))
}

func (suite *HTTPUtilTestSuite) TestIsAbsoluteURI() {
	assert.True(suite.T(), IsAbsoluteURI("https://client.example.com/callback"))
	assert.True(suite.T(), IsAbsoluteURI("http://localhost:8080/cb"))
	assert.False(suite.T(), IsAbsoluteURI("/relative/path"))
	assert.False(suite.T(), IsAbsoluteURI("client.example.com/callback"))
	assert.False(suite.T(), IsAbsoluteURI(""))
	assert.False(suite.T(), IsAbsoluteURI("https://"))
}

func (suite *HTTPUtilTestSuite) TestGetURIWithQueryParams() {
	uri, err := GetURIWithQueryParams("https://client.example.com/callback", map[string]string{
		"code":  "abc123",
		"state": "xyz",
	})

	assert.NoError(suite.T(), err)
	parsed, parseErr := url.Parse(uri)
	assert.NoError(suite.T(), parseErr)
	assert.Equal(suite.T(), "abc123", parsed.Query().Get("code"))
	assert.Equal(suite.T(), "xyz", parsed.Query().Get("state"))
}

func (suite *HTTPUtilTestSuite) TestGetURIWithQueryParamsPreservesExisting() {
	uri, err := GetURIWithQueryParams("https://client.example.com/callback?env=prod",
		map[string]string{"code": "abc123"})

	assert.NoError(suite.T(), err)
	parsed, parseErr := url.Parse(uri)
	assert.NoError(suite.T(), parseErr)
	assert.Equal(suite.T(), "prod", parsed.Query().Get("env"))
	assert.Equal(suite.T(), "abc123", parsed.Query().Get("code"))
}

func (suite *HTTPUtilTestSuite) TestGetURIWithQueryParamsEscapesValues() {
	uri, err := GetURIWithQueryParams("https://client.example.com/callback",
		map[string]string{"state": "a b&c=d"})

	assert.NoError(suite.T(), err)
	parsed, parseErr := url.Parse(uri)
	assert.NoError(suite.T(), parseErr)
	assert.Equal(suite.T(), "a b&c=d", parsed.Query().Get("state"))
}

func (suite *HTTPUtilTestSuite) TestGetURIWithFragmentParams() {
	uri, err := GetURIWithFragmentParams("https://client.example.com/callback", map[string]string{
		"access_token": "token-1",
		"token_type":   "Bearer",
	})

	assert.NoError(suite.T(), err)
	base, fragment, found := strings.Cut(uri, "#")
	assert.True(suite.T(), found)
	assert.Equal(suite.T(), "https://client.example.com/callback", base)
	values, parseErr := url.ParseQuery(fragment)
	assert.NoError(suite.T(), parseErr)
	assert.Equal(suite.T(), "token-1", values.Get("access_token"))
	assert.Equal(suite.T(), "Bearer", values.Get("token_type"))
}

func (suite *HTTPUtilTestSuite) TestGetURIWithFragmentParamsReplacesExistingFragment() {
	uri, err := GetURIWithFragmentParams("https://client.example.com/callback#old",
		map[string]string{"id_token": "jwt"})

	assert.NoError(suite.T(), err)
	assert.NotContains(suite.T(), uri, "old")
	_, fragment, _ := strings.Cut(uri, "#")
	values, parseErr := url.ParseQuery(fragment)
	assert.NoError(suite.T(), parseErr)
	assert.Equal(suite.T(), "jwt", values.Get("id_token"))
}

func (suite *HTTPUtilTestSuite) TestGetGateClientURI() {
	config.ResetFlintRuntime()
	err := config.InitializeFlintRuntime("/tmp/flint-test", &config.Config{
		GateClient: config.GateClientConfig{
			Scheme:      "https",
			Hostname:    "gate.example.com",
			Port:        9001,
			LoginPath:   "/login",
			ConsentPath: "/consent",
			ErrorPath:   "/error",
		},
	})
	assert.NoError(suite.T(), err)
	defer config.ResetFlintRuntime()

	uri, err := GetGateClientURI("login", map[string]string{"signInKey": "key-1"})
	assert.NoError(suite.T(), err)
	parsed, parseErr := url.Parse(uri)
	assert.NoError(suite.T(), parseErr)
	assert.Equal(suite.T(), "https", parsed.Scheme)
	assert.Equal(suite.T(), "gate.example.com:9001", parsed.Host)
	assert.Equal(suite.T(), "/login", parsed.Path)
	assert.Equal(suite.T(), "key-1", parsed.Query().Get("signInKey"))

	uri, err = GetGateClientURI("consent", nil)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), uri, "/consent")

	uri, err = GetGateClientURI("error", map[string]string{"error": "invalid_client"})
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), uri, "/error")

	_, err = GetGateClientURI("unknown", nil)
	assert.Error(suite.T(), err)
}

func (suite *HTTPUtilTestSuite) TestWriteJSONError() {
	w := httptest.NewRecorder()

	WriteJSONError(w, "invalid_request", "missing parameter", 400,
		[]map[string]string{{"Cache-Control": "no-store"}})

	assert.Equal(suite.T(), 400, w.Code)
	assert.Equal(suite.T(), "application/json", w.Header().Get("Content-Type"))
	assert.Equal(suite.T(), "no-store", w.Header().Get("Cache-Control"))

	var body map[string]string
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(suite.T(), "invalid_request", body["error"])
	assert.Equal(suite.T(), "missing parameter", body["error_description"])
}
