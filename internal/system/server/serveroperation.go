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

// Package server provides server wide operations and utilities.
package server

import (
	"net/http"
	"time"

	"github.com/asgardeo/flint/internal/system/log"
)

// Cors holds the CORS configuration for a wrapped handler.
type Cors struct {
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials bool
}

// RequestWrapOptions holds the options applied to a wrapped handler.
type RequestWrapOptions struct {
	Cors *Cors
}

// ServerOperationServiceInterface defines the interface for wrapping handler functions.
type ServerOperationServiceInterface interface {
	WrapHandleFunction(mux *http.ServeMux, pattern string, opts *RequestWrapOptions,
		handler func(http.ResponseWriter, *http.Request))
}

// ServerOperationService implements the ServerOperationServiceInterface.
type ServerOperationService struct{}

// NewServerOperationService creates a new instance of ServerOperationService.
func NewServerOperationService() ServerOperationServiceInterface {
	return &ServerOperationService{}
}

// WrapHandleFunction registers the handler on the mux with common headers, CORS and access logging applied.
func (s *ServerOperationService) WrapHandleFunction(mux *http.ServeMux, pattern string,
	opts *RequestWrapOptions, handler func(http.ResponseWriter, *http.Request)) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")

		if opts != nil && opts.Cors != nil {
			applyCors(w, r, opts.Cors)
		}

		handler(w, r)

		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AccessLog"))
		logger.Info("Request served",
			log.String("method", r.Method),
			log.String("path", r.URL.Path),
			log.String("duration", time.Since(start).String()))
	})
}

// applyCors sets the CORS response headers for the request origin.
func applyCors(w http.ResponseWriter, r *http.Request, cors *Cors) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", origin)
	if cors.AllowedMethods != "" {
		w.Header().Set("Access-Control-Allow-Methods", cors.AllowedMethods)
	}
	if cors.AllowedHeaders != "" {
		w.Header().Set("Access-Control-Allow-Headers", cors.AllowedHeaders)
	}
	if cors.AllowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}
