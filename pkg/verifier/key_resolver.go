// Copyright (C) 2025 useme-com
//
// This file is part of transferwise-go.
//
// transferwise-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// transferwise-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with transferwise-go.  If not, see <https://www.gnu.org/licenses/>.

package verifier

import (
	"context"
	"crypto"
	"errors"
	"net/http"
	"strings"
	"sync"
)

// ErrKeyNotFound is returned when no public key is registered for a caller
var ErrKeyNotFound = errors.New("no public key registered for caller")

// KeyResolver finds the public key a request must be signed with
type KeyResolver interface {
	ResolvePublicKey(ctx context.Context, req *http.Request) (crypto.PublicKey, error)
}

// StaticKeyResolver resolves every request to the same key
type StaticKeyResolver struct {
	key crypto.PublicKey
}

// NewStaticKeyResolver creates a resolver that always returns key
func NewStaticKeyResolver(key crypto.PublicKey) *StaticKeyResolver {
	return &StaticKeyResolver{key: key}
}

// ResolvePublicKey implements KeyResolver
func (r *StaticKeyResolver) ResolvePublicKey(ctx context.Context, req *http.Request) (crypto.PublicKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.key == nil {
		return nil, ErrKeyNotFound
	}
	return r.key, nil
}

// TokenKeyResolver maps bearer API tokens to the public keys uploaded for them
type TokenKeyResolver struct {
	mu   sync.RWMutex
	keys map[string]crypto.PublicKey
}

// NewTokenKeyResolver creates an empty TokenKeyResolver
func NewTokenKeyResolver() *TokenKeyResolver {
	return &TokenKeyResolver{keys: make(map[string]crypto.PublicKey)}
}

// Register associates token with key, replacing any previous key
func (r *TokenKeyResolver) Register(token string, key crypto.PublicKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[token] = key
}

// ResolvePublicKey implements KeyResolver
func (r *TokenKeyResolver) ResolvePublicKey(ctx context.Context, req *http.Request) (crypto.PublicKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	token, ok := BearerToken(req)
	if !ok {
		return nil, ErrKeyNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	key, found := r.keys[token]
	if !found {
		return nil, ErrKeyNotFound
	}
	return key, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header
func BearerToken(req *http.Request) (string, bool) {
	auth := req.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return auth[len(prefix):], true
}
