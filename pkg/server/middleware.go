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
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/useme-com/transferwise-go/pkg/client"
	"github.com/useme-com/transferwise-go/pkg/verifier"
)

type contextKey string

const approvalKey contextKey = "approval"

// DefaultNonceTTL bounds how long an issued approval token can be answered
const DefaultNonceTTL = 5 * time.Minute

var (
	errNonceUnknown = errors.New("approval token was not issued or was already used")
	errNonceExpired = errors.New("approval token expired")
)

// ErrorHandler handles requests whose signing key cannot be resolved
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// ProtectedFunc reports whether a request requires step-up approval
type ProtectedFunc func(r *http.Request) bool

// ApprovalMiddleware plays the provider's side of step-up approval. A
// protected request without a valid signed approval token is refused with 403,
// x-2fa-approval-result: REJECTED and a fresh one-time token in
// x-2fa-approval. A request echoing an issued token with a valid X-Signature
// reaches the next handler, and the response carries
// x-2fa-approval-result: APPROVED.
type ApprovalMiddleware struct {
	resolver     verifier.KeyResolver
	verifier     verifier.ApprovalVerifier
	errorHandler ErrorHandler
	protected    ProtectedFunc
	logger       *zap.Logger
	nonceTTL     time.Duration
	now          func() time.Time

	mu     sync.Mutex
	issued map[string]time.Time
}

// NewApprovalMiddleware creates middleware that checks signatures against the
// keys returned by resolver
func NewApprovalMiddleware(resolver verifier.KeyResolver) *ApprovalMiddleware {
	return NewApprovalMiddlewareWithVerifier(resolver, verifier.NewDefaultVerifier())
}

// NewApprovalMiddlewareWithVerifier creates middleware with a custom verifier
func NewApprovalMiddlewareWithVerifier(resolver verifier.KeyResolver, v verifier.ApprovalVerifier) *ApprovalMiddleware {
	return &ApprovalMiddleware{
		resolver:     resolver,
		verifier:     v,
		errorHandler: defaultErrorHandler,
		protected:    unsafeMethod,
		logger:       zap.NewNop(),
		nonceTTL:     DefaultNonceTTL,
		now:          time.Now,
		issued:       make(map[string]time.Time),
	}
}

// SetErrorHandler sets a custom error handler
func (m *ApprovalMiddleware) SetErrorHandler(handler ErrorHandler) {
	m.errorHandler = handler
}

// SetProtected selects the requests that need approval. By default every
// request except GET, HEAD and OPTIONS does.
func (m *ApprovalMiddleware) SetProtected(protected ProtectedFunc) {
	m.protected = protected
}

// SetLogger sets the logger. nil keeps the current one.
func (m *ApprovalMiddleware) SetLogger(logger *zap.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// SetNonceTTL sets how long an issued approval token stays valid
func (m *ApprovalMiddleware) SetNonceTTL(ttl time.Duration) {
	m.nonceTTL = ttl
}

// Pending returns the number of issued, unanswered approval tokens
func (m *ApprovalMiddleware) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.issued)
}

// Wrap wraps an HTTP handler with step-up approval
func (m *ApprovalMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.protected(r) {
			next.ServeHTTP(w, r)
			return
		}

		pub, err := m.resolver.ResolvePublicKey(r.Context(), r)
		if err != nil {
			m.errorHandler(w, r, fmt.Errorf("cannot resolve signing key: %w", err))
			return
		}

		signature := r.Header.Get(client.HeaderSignature)
		if signature == "" {
			m.challenge(w, r, nil)
			return
		}

		token := r.Header.Get(client.HeaderApproval)
		if err := m.consume(token); err != nil {
			m.challenge(w, r, err)
			return
		}
		if err := m.verifier.Verify(pub, token, signature); err != nil {
			m.challenge(w, r, err)
			return
		}

		m.logger.Debug("step-up approval granted",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)

		w.Header().Set(client.HeaderApprovalResult, client.ApprovalApproved)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), approvalKey, token)))
	})
}

// GetApprovalFromContext returns the approval token a request was granted with
func GetApprovalFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(approvalKey).(string)
	return token, ok
}

func (m *ApprovalMiddleware) challenge(w http.ResponseWriter, r *http.Request, cause error) {
	token := m.issue()

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	m.logger.Debug("step-up approval required", fields...)

	w.Header().Set(client.HeaderApprovalResult, client.ApprovalRejected)
	w.Header().Set(client.HeaderApproval, token)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = fmt.Fprintf(w, `{"error":"approval required","path":%q}`, r.URL.Path)
}

func (m *ApprovalMiddleware) issue() string {
	token := uuid.NewString()
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for t, issuedAt := range m.issued {
		if now.Sub(issuedAt) > m.nonceTTL {
			delete(m.issued, t)
		}
	}
	m.issued[token] = now

	return token
}

// consume removes token from the issued set. A token can be answered once,
// whether or not its signature turns out to be valid.
func (m *ApprovalMiddleware) consume(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	issuedAt, ok := m.issued[token]
	if !ok {
		return errNonceUnknown
	}
	delete(m.issued, token)

	if m.now().Sub(issuedAt) > m.nonceTTL {
		return errNonceExpired
	}
	return nil
}

func unsafeMethod(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, fmt.Sprintf("Unauthorized: %s", err.Error()), http.StatusUnauthorized)
}
