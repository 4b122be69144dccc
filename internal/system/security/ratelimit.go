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

// Package security provides request level protections for the server endpoints.
package security

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/asgardeo/flint/internal/system/log"
)

const defaultCleanupInterval = 5 * time.Minute

// rateLimiterEntry tracks a rate limiter and its last access time.
type rateLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiterInterface defines the interface for per identifier rate limiting.
type RateLimiterInterface interface {
	Allow(identifier string) bool
	Stop()
}

// RateLimiter provides per identifier rate limiting using a token bucket per identifier.
type RateLimiter struct {
	limiters    map[string]*rateLimiterEntry
	mu          sync.Mutex
	rps         int
	burst       int
	stopCleanup chan struct{}
}

// NewRateLimiter creates a new rate limiter with periodic cleanup of idle entries.
func NewRateLimiter(requestsPerSecond, burst int) RateLimiterInterface {
	rl := &RateLimiter{
		limiters:    make(map[string]*rateLimiterEntry),
		rps:         requestsPerSecond,
		burst:       burst,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()

	return rl
}

// Allow reports whether a request for the given identifier is within the limit.
func (rl *RateLimiter) Allow(identifier string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[identifier]
	if !exists {
		entry = &rateLimiterEntry{
			limiter: rate.NewLimiter(rate.Limit(rl.rps), rl.burst),
		}
		rl.limiters[identifier] = entry
	}
	entry.lastAccess = time.Now()

	return entry.limiter.Allow()
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCleanup)
}

// cleanupLoop periodically removes idle limiter entries to bound memory usage.
func (rl *RateLimiter) cleanupLoop() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RateLimiter"))

	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(defaultCleanupInterval)
		case <-rl.stopCleanup:
			logger.Debug("Rate limiter cleanup stopped")
			return
		}
	}
}

// cleanup removes entries that have been idle longer than maxIdleTime.
func (rl *RateLimiter) cleanup(maxIdleTime time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-maxIdleTime)
	for identifier, entry := range rl.limiters {
		if entry.lastAccess.Before(cutoff) {
			delete(rl.limiters, identifier)
		}
	}
}
