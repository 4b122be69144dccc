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

package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)
	defer rl.Stop()

	assert.True(t, rl.Allow("client-1"))
	assert.True(t, rl.Allow("client-1"))
	assert.True(t, rl.Allow("client-1"))
	assert.False(t, rl.Allow("client-1"))
}

func TestRateLimiterIsolatesIdentifiers(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()

	assert.True(t, rl.Allow("client-1"))
	assert.False(t, rl.Allow("client-1"))
	// A different identifier has its own bucket.
	assert.True(t, rl.Allow("client-2"))
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(100, 1)
	defer rl.Stop()

	assert.True(t, rl.Allow("client-1"))
	assert.False(t, rl.Allow("client-1"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("client-1"))
}

func TestRateLimiterCleanupRemovesIdleEntries(t *testing.T) {
	rl := &RateLimiter{
		limiters:    make(map[string]*rateLimiterEntry),
		rps:         1,
		burst:       1,
		stopCleanup: make(chan struct{}),
	}
	defer close(rl.stopCleanup)

	rl.Allow("client-1")
	rl.cleanup(0)

	rl.mu.Lock()
	_, exists := rl.limiters["client-1"]
	rl.mu.Unlock()
	assert.False(t, exists)
}
