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

// Package server provides an HTTP middleware that emulates the provider side
// of TransferWise step-up approval ("2FA").
//
// It is meant for local sandboxes and integration tests of code built on
// pkg/client.
//
// # Basic Usage
//
//	resolver := verifier.NewTokenKeyResolver()
//	resolver.Register(apiToken, &privateKey.PublicKey)
//
//	middleware := server.NewApprovalMiddleware(resolver)
//
//	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    token, _ := server.GetApprovalFromContext(r.Context())
//	    fmt.Fprintf(w, `{"approvedWith":%q}`, token)
//	})
//
//	http.Handle("/v3/profiles/", middleware.Wrap(handler))
//
// # How It Works
//
// For each protected request (by default anything but GET, HEAD and OPTIONS)
// the middleware:
//
//  1. Resolves the caller's public key, e.g. from the bearer token. Failure
//     goes to the error handler (401 by default).
//  2. Without an X-Signature header, answers 403 with
//     x-2fa-approval-result: REJECTED and a new token in x-2fa-approval.
//  3. Otherwise consumes the echoed x-2fa-approval token. Unknown, reused or
//     expired tokens are challenged again.
//  4. Verifies X-Signature over the token. An invalid signature is challenged
//     again.
//  5. Sets x-2fa-approval-result: APPROVED and calls the next handler with
//     the token in the request context.
//
// # Custom Protection
//
//	middleware.SetProtected(func(r *http.Request) bool {
//	    return strings.HasSuffix(r.URL.Path, "/payments")
//	})
package server
