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

package server

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/useme-com/transferwise-go/internal/testutil"
	"github.com/useme-com/transferwise-go/pkg/client"
	"github.com/useme-com/transferwise-go/pkg/keys"
	"github.com/useme-com/transferwise-go/pkg/signer"
	"github.com/useme-com/transferwise-go/pkg/verifier"
)

const testToken = "test-token"

type fixture struct {
	middleware *ApprovalMiddleware
	server     *httptest.Server
	key        *rsa.PrivateKey
	reached    *int32
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	key := testutil.RSAKey(t)
	resolver := verifier.NewTokenKeyResolver()
	resolver.Register(testToken, &key.PublicKey)

	var reached int32
	m := NewApprovalMiddleware(resolver)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&reached, 1)
		token, _ := GetApprovalFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]string{"approvedWith": token, "status": "COMPLETED"})
	})

	server := httptest.NewServer(m.Wrap(handler))
	t.Cleanup(server.Close)

	return &fixture{middleware: m, server: server, key: key, reached: &reached}
}

func (f *fixture) do(t *testing.T, method string, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, f.server.URL+"/v3/profiles/1/transfers/2/payments", strings.NewReader(`{"type":"BALANCE"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *fixture) sign(t *testing.T, token string) string {
	t.Helper()
	key, err := keys.NewSigningKey(f.key)
	require.NoError(t, err)
	sig, err := signer.Sign(key, token)
	require.NoError(t, err)
	return sig
}

func TestWrap_SafeMethodPassesThrough(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(client.HeaderApprovalResult))
	assert.EqualValues(t, 1, atomic.LoadInt32(f.reached))
}

func TestWrap_ChallengesUnsignedRequest(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, nil)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, client.ApprovalRejected, resp.Header.Get(client.HeaderApprovalResult))
	assert.NotEmpty(t, resp.Header.Get(client.HeaderApproval))
	assert.Equal(t, 1, f.middleware.Pending())
	assert.Zero(t, atomic.LoadInt32(f.reached))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, json.Valid(body))
}

func TestWrap_ApprovesSignedToken(t *testing.T) {
	f := newFixture(t)

	challenge := f.do(t, http.MethodPost, nil)
	token := challenge.Header.Get(client.HeaderApproval)

	resp := f.do(t, http.MethodPost, map[string]string{
		client.HeaderApproval:  token,
		client.HeaderSignature: f.sign(t, token),
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, client.ApprovalApproved, resp.Header.Get(client.HeaderApprovalResult))
	assert.EqualValues(t, 1, atomic.LoadInt32(f.reached))
	assert.Zero(t, f.middleware.Pending())

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, token, body["approvedWith"])
}

func TestWrap_TokenIsSingleUse(t *testing.T) {
	f := newFixture(t)

	token := f.do(t, http.MethodPost, nil).Header.Get(client.HeaderApproval)
	headers := map[string]string{
		client.HeaderApproval:  token,
		client.HeaderSignature: f.sign(t, token),
	}

	first := f.do(t, http.MethodPost, headers)
	second := f.do(t, http.MethodPost, headers)

	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, http.StatusForbidden, second.StatusCode)
	assert.Equal(t, client.ApprovalRejected, second.Header.Get(client.HeaderApprovalResult))
	assert.NotEqual(t, token, second.Header.Get(client.HeaderApproval))
	assert.EqualValues(t, 1, atomic.LoadInt32(f.reached))
}

func TestWrap_RejectsInvalidSignature(t *testing.T) {
	f := newFixture(t)

	token := f.do(t, http.MethodPost, nil).Header.Get(client.HeaderApproval)

	resp := f.do(t, http.MethodPost, map[string]string{
		client.HeaderApproval:  token,
		client.HeaderSignature: f.sign(t, "another-token"),
	})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, client.ApprovalRejected, resp.Header.Get(client.HeaderApprovalResult))
	assert.Zero(t, atomic.LoadInt32(f.reached))
}

func TestWrap_RejectsUnissuedToken(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, map[string]string{
		client.HeaderApproval:  "made-up",
		client.HeaderSignature: f.sign(t, "made-up"),
	})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, atomic.LoadInt32(f.reached))
}

func TestWrap_RejectsExpiredToken(t *testing.T) {
	f := newFixture(t)
	base := time.Now()
	var elapsed atomic.Int64
	f.middleware.now = func() time.Time { return base.Add(time.Duration(elapsed.Load())) }
	f.middleware.SetNonceTTL(time.Minute)

	token := f.do(t, http.MethodPost, nil).Header.Get(client.HeaderApproval)
	elapsed.Store(int64(2 * time.Minute))

	resp := f.do(t, http.MethodPost, map[string]string{
		client.HeaderApproval:  token,
		client.HeaderSignature: f.sign(t, token),
	})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, atomic.LoadInt32(f.reached))
	assert.Equal(t, 1, f.middleware.Pending(), "only the fresh challenge token is pending")
}

func TestWrap_UnknownCaller(t *testing.T) {
	f := newFixture(t)

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/v1/transfers", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer someone-else")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, resp.Header.Get(client.HeaderApproval))
	assert.Zero(t, f.middleware.Pending())
}

func TestSetErrorHandler(t *testing.T) {
	var got error
	m := NewApprovalMiddleware(verifier.NewTokenKeyResolver())
	m.SetErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		http.Error(w, "nope", http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	m.Wrap(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/transfers", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, errors.Is(got, verifier.ErrKeyNotFound))
}

func TestSetProtected(t *testing.T) {
	f := newFixture(t)
	f.middleware.SetProtected(func(r *http.Request) bool {
		return strings.HasSuffix(r.URL.Path, "/statement.json")
	})

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, nil).StatusCode)

	req, err := http.NewRequest(http.MethodGet, f.server.URL+"/v1/borderless-accounts/1/statement.json", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSetLogger(t *testing.T) {
	f := newFixture(t)
	core, logs := observer.New(zapcore.DebugLevel)
	f.middleware.SetLogger(zap.New(core))
	f.middleware.SetLogger(nil)

	resp := f.do(t, http.MethodPost, nil)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 1, logs.FilterMessage("step-up approval required").Len())
}

func TestWrap_WithClient(t *testing.T) {
	f := newFixture(t)
	path := testutil.WriteKeyFile(t, testutil.PKCS1PEM(t, f.key, ""))

	c, err := client.New(client.Config{
		APIBaseURL:     f.server.URL + "/",
		APIToken:       testToken,
		PrivateKeyPath: path,
	})
	require.NoError(t, err)

	resp, err := c.Post(context.Background(), "v3/profiles/1/transfers/2/payments", map[string]string{"type": "BALANCE"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, client.ApprovalApproved, resp.ApprovalResult())
	assert.EqualValues(t, 1, atomic.LoadInt32(f.reached))

	var body map[string]string
	require.NoError(t, resp.Decode(&body))
	assert.Equal(t, "COMPLETED", body["status"])
}

func TestGetApprovalFromContext_Missing(t *testing.T) {
	_, ok := GetApprovalFromContext(context.Background())
	assert.False(t, ok)
}
