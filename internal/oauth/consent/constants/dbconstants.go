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

// Package constants defines constants used by the consent module.
package constants

import dbmodel "github.com/asgardeo/flint/internal/system/database/model"

// QueryGetConsentGrant retrieves the consent grant for a subject and client.
var QueryGetConsentGrant = dbmodel.DBQuery{
	ID: "CSQ-00001",
	Query: "SELECT grant_id, subject, client_id, scopes, granted_at FROM idn_consent_grant " +
		"WHERE subject = $1 AND client_id = $2",
}

// QueryUpsertConsentGrant stores a consent grant, replacing any existing
// grant for the same subject and client.
var QueryUpsertConsentGrant = dbmodel.DBQuery{
	ID: "CSQ-00002",
	Query: "INSERT INTO idn_consent_grant (grant_id, subject, client_id, scopes, granted_at) " +
		"VALUES ($1, $2, $3, $4, $5) ON CONFLICT (subject, client_id) " +
		"DO UPDATE SET grant_id = $1, scopes = $4, granted_at = $5",
}

// QueryDeleteConsentGrant removes the consent grant for a subject and client.
var QueryDeleteConsentGrant = dbmodel.DBQuery{
	ID:    "CSQ-00003",
	Query: "DELETE FROM idn_consent_grant WHERE subject = $1 AND client_id = $2",
}
