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

package config

import "sync"

// FlintRuntime holds the runtime configuration for the Flint server.
type FlintRuntime struct {
	FlintHome string `yaml:"flint_home"`
	Config    Config `yaml:"config"`
}

var (
	runtimeConfig *FlintRuntime
	once          sync.Once
)

// InitializeFlintRuntime initializes the FlintRuntime configuration.
func InitializeFlintRuntime(flintHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &FlintRuntime{
			FlintHome: flintHome,
			Config:    *config,
		}
	})

	return nil
}

// GetFlintRuntime returns the FlintRuntime configuration.
func GetFlintRuntime() *FlintRuntime {
	if runtimeConfig == nil {
		panic("FlintRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetFlintRuntime resets the FlintRuntime.
// This should only be used in tests to reset the singleton state.
func ResetFlintRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
