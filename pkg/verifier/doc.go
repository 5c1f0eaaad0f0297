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

// Package verifier checks step-up approval signatures, the provider-side
// counterpart of package signer.
//
//	err := verifier.Verify(publicKey, challengeToken, req.Header.Get("X-Signature"))
//	if errors.Is(err, verifier.ErrInvalidSignature) {
//	    // reject
//	}
//
// A KeyResolver picks the public key for an incoming request. TokenKeyResolver
// mirrors how TransferWise binds an uploaded public key to an API token.
package verifier
