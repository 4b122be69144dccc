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

package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asgardeo/flint/internal/oauth/consent/model"
)

const (
	mongoDatabaseName   = "flint"
	mongoCollectionName = "consent_grants"
)

// MongoConsentStore is the MongoDB backed consent store, for deployments
// where consent grants live outside the identity database.
type MongoConsentStore struct {
	client *mongo.Client
}

// NewMongoConsentStore connects to MongoDB at the given URI and returns a
// consent store backed by it.
func NewMongoConsentStore(ctx context.Context, connectionURI string) (ConsentStoreInterface, error) {
	opts := options.Client().ApplyURI(connectionURI)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &MongoConsentStore{client: client}, nil
}

func (ms *MongoConsentStore) collection() *mongo.Collection {
	return ms.client.Database(mongoDatabaseName).Collection(mongoCollectionName)
}

// GetGrant retrieves the consent grant for the given subject and client.
func (ms *MongoConsentStore) GetGrant(ctx context.Context, subject, clientID string) (
	*model.ConsentGrant, error) {
	filter := bson.D{{Key: "subject", Value: subject}, {Key: "client_id", Value: clientID}}
	var grant model.ConsentGrant
	if err := ms.collection().FindOne(ctx, filter).Decode(&grant); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrConsentNotFound
		}
		return nil, err
	}
	return &grant, nil
}

// SaveGrant stores a consent grant, replacing any previous grant for the
// same subject and client.
func (ms *MongoConsentStore) SaveGrant(ctx context.Context, grant *model.ConsentGrant) error {
	filter := bson.D{{Key: "subject", Value: grant.Subject}, {Key: "client_id", Value: grant.ClientID}}
	opts := options.Replace().SetUpsert(true)
	_, err := ms.collection().ReplaceOne(ctx, filter, grant, opts)
	return err
}

// RevokeGrant removes the consent grant for the given subject and client.
func (ms *MongoConsentStore) RevokeGrant(ctx context.Context, subject, clientID string) error {
	filter := bson.D{{Key: "subject", Value: subject}, {Key: "client_id", Value: clientID}}
	_, err := ms.collection().DeleteOne(ctx, filter)
	return err
}
