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

// Package token issues the signed tokens returned from the authorize
// endpoint for implicit and hybrid flows.
package token

import (
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	"github.com/asgardeo/flint/internal/system/config"
	"github.com/asgardeo/flint/internal/system/utils"
)

// TokenIssuerInterface defines the operations for issuing tokens.
type TokenIssuerInterface interface {
	IssueAccessToken(subject, clientID string, scopes []string) (string, int64, error)
	IssueIDToken(subject, clientID, nonce, accessToken string, authTime time.Time) (string, error)
}

// TokenIssuer signs tokens with the server's RSA private key using RS256.
type TokenIssuer struct {
	issuer         string
	validityPeriod int64
	privateKey     *rsa.PrivateKey
	keyID          string
	signer         jose.Signer
}

var (
	issuerInstance *TokenIssuer
	issuerOnce     sync.Once
	issuerErr      error
)

// GetTokenIssuer returns a singleton TokenIssuer initialized from the
// runtime configuration.
func GetTokenIssuer() (TokenIssuerInterface, error) {
	issuerOnce.Do(func() {
		issuerInstance, issuerErr = newTokenIssuer()
	})
	if issuerErr != nil {
		return nil, issuerErr
	}
	return issuerInstance, nil
}

func newTokenIssuer() (*TokenIssuer, error) {
	runtime := config.GetFlintRuntime()
	keyPath := runtime.FlintHome + "/" + runtime.Config.Security.KeyFile

	privateKey, err := loadRSAPrivateKey(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}

	keyID := computeKeyID(privateKey)
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.RS256, Key: privateKey},
		(&jose.SignerOptions{}).WithType("JWT").WithHeader("kid", keyID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create signer: %w", err)
	}

	validityPeriod := runtime.Config.OAuth.JWT.ValidityPeriod
	if validityPeriod <= 0 {
		validityPeriod = 3600
	}

	return &TokenIssuer{
		issuer:         runtime.Config.OAuth.JWT.Issuer,
		validityPeriod: validityPeriod,
		privateKey:     privateKey,
		keyID:          keyID,
		signer:         signer,
	}, nil
}

// IssueAccessToken issues a signed access token for the given subject,
// client and scopes. Returns the serialized token and its validity period
// in seconds.
func (ti *TokenIssuer) IssueAccessToken(subject, clientID string, scopes []string) (string, int64, error) {
	now := time.Now()
	claims := map[string]interface{}{
		"iss":   ti.issuer,
		"sub":   subject,
		"aud":   clientID,
		"iat":   now.Unix(),
		"exp":   now.Unix() + ti.validityPeriod,
		"jti":   utils.GenerateUUID(),
		"scope": strings.Join(scopes, " "),
	}

	token, err := jwt.Signed(ti.signer).Claims(claims).Serialize()
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, ti.validityPeriod, nil
}

// IssueIDToken issues a signed ID token. The nonce is echoed when present,
// and at_hash is included when an access token accompanies the ID token.
func (ti *TokenIssuer) IssueIDToken(subject, clientID, nonce, accessToken string,
	authTime time.Time) (string, error) {
	now := time.Now()
	claims := map[string]interface{}{
		"iss": ti.issuer,
		"sub": subject,
		"aud": clientID,
		"iat": now.Unix(),
		"exp": now.Unix() + ti.validityPeriod,
	}
	if !authTime.IsZero() {
		claims["auth_time"] = authTime.Unix()
	}
	if nonce != "" {
		claims["nonce"] = nonce
	}
	if accessToken != "" {
		claims["at_hash"] = computeATHash(accessToken)
	}

	token, err := jwt.Signed(ti.signer).Claims(claims).Serialize()
	if err != nil {
		return "", fmt.Errorf("failed to sign id token: %w", err)
	}
	return token, nil
}

// loadRSAPrivateKey reads an RSA private key from a PEM file.
func loadRSAPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyBytes, err := os.ReadFile(path) // #nosec G304 -- path comes from server config
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(keyBytes)
	if block == nil {
		return nil, errors.New("failed to decode PEM block from key file")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("key file does not contain an RSA private key")
	}
	return rsaKey, nil
}

// computeKeyID derives a stable key identifier from the public key modulus.
func computeKeyID(key *rsa.PrivateKey) string {
	hash := sha256.Sum256(key.PublicKey.N.Bytes())
	return base64.RawURLEncoding.EncodeToString(hash[:8])
}

// computeATHash computes the OIDC at_hash value: the left half of the
// SHA-256 digest of the access token, base64url encoded.
func computeATHash(accessToken string) string {
	hash := sha256.Sum256([]byte(accessToken))
	return base64.RawURLEncoding.EncodeToString(hash[:sha256.Size/2])
}
