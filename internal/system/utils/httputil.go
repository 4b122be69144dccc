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

// Package utils provides utility functions for HTTP operations.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/asgardeo/flint/internal/system/config"
	"github.com/asgardeo/flint/internal/system/log"
)

// WriteJSONError writes a JSON error response with the given details.
func WriteJSONError(w http.ResponseWriter, code, desc string, statusCode int, respHeaders []map[string]string) {
	logger := log.GetLogger()
	logger.Error("Error in HTTP response", log.String("error", code), log.String("description", desc))

	// Set the response headers.
	for _, header := range respHeaders {
		for key, value := range header {
			w.Header().Set(key, value)
		}
	}
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(map[string]string{
		"error":             code,
		"error_description": desc,
	})
	if err != nil {
		logger.Error("Failed to write JSON error response", log.Error(err))
		return
	}
}

// ParseURL parses the given URL string and returns a URL object.
func ParseURL(urlStr string) (*url.URL, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}
	return parsedURL, nil
}

// IsAbsoluteURI checks whether the given string is a well formed absolute URI.
func IsAbsoluteURI(uriStr string) bool {
	parsed, err := url.Parse(uriStr)
	if err != nil {
		return false
	}
	return parsed.IsAbs() && parsed.Host != ""
}

// GetURIWithQueryParams appends the given parameters to the query component of the URI.
// Existing query parameters on the URI are preserved.
func GetURIWithQueryParams(uri string, queryParams map[string]string) (string, error) {
	parsedURL, err := url.Parse(uri)
	if err != nil {
		return "", errors.New("failed to parse URI: " + err.Error())
	}

	query := parsedURL.Query()
	for key, value := range queryParams {
		query.Set(key, value)
	}
	parsedURL.RawQuery = query.Encode()

	return parsedURL.String(), nil
}

// GetGateClientURI builds the URI of a gate client page ("login", "consent"
// or "error") with the given query parameters.
func GetGateClientURI(page string, queryParams map[string]string) (string, error) {
	gateConfig := config.GetFlintRuntime().Config.GateClient

	var pagePath string
	switch page {
	case "login":
		pagePath = gateConfig.LoginPath
	case "consent":
		pagePath = gateConfig.ConsentPath
	case "error":
		pagePath = gateConfig.ErrorPath
	default:
		return "", errors.New("unknown gate client page: " + page)
	}

	baseURL := url.URL{
		Scheme: gateConfig.Scheme,
		Host:   fmt.Sprintf("%s:%d", gateConfig.Hostname, gateConfig.Port),
		Path:   pagePath,
	}
	return GetURIWithQueryParams(baseURL.String(), queryParams)
}

// GetURIWithFragmentParams appends the given parameters to the URI as a fragment component.
func GetURIWithFragmentParams(uri string, fragmentParams map[string]string) (string, error) {
	parsedURL, err := url.Parse(uri)
	if err != nil {
		return "", errors.New("failed to parse URI: " + err.Error())
	}

	fragment := url.Values{}
	for key, value := range fragmentParams {
		fragment.Set(key, value)
	}
	parsedURL.Fragment = ""
	parsedURL.RawFragment = ""

	return parsedURL.String() + "#" + fragment.Encode(), nil
}
