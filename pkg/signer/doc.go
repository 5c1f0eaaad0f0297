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

// Package signer signs step-up approval ("2FA") challenges.
//
// When TransferWise refuses a sensitive call it answers with
// x-2fa-approval-result: REJECTED and a one-time token in x-2fa-approval.
// The client proves possession of its registered key by signing that token
// and replaying the call with the signature in X-Signature.
//
// # Signing a Challenge
//
//	key, _ := keys.Load("private.pem", "")
//	sig, err := signer.Sign(key, "9d6a3b8e-....")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	req.Header.Set("X-Signature", sig)
//
// # Supported Algorithms
//
//   - RSA: PKCS#1 v1.5 over SHA-256 (what TransferWise verifies)
//   - ECDSA: ASN.1 DER over SHA-256
//   - Ed25519: over the raw message
//
// ECDSA signatures are randomized, so check results with the verifier
// package instead of comparing bytes.
//
// # Error Handling
//
// Failures are returned as apierror.KindSigning.
package signer
