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
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrInvalidSignature is returned when a signature does not match the message
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrUnsupportedKey is returned for public key types other than RSA, ECDSA and Ed25519
	ErrUnsupportedKey = errors.New("unsupported public key type")
)

// ApprovalVerifier checks step-up approval signatures
type ApprovalVerifier interface {
	// Verify checks that signatureB64 is a valid signature of message under pubKey
	Verify(pubKey crypto.PublicKey, message, signatureB64 string) error
}

// DefaultVerifier verifies the signatures produced by signer.DefaultSigner
type DefaultVerifier struct{}

// NewDefaultVerifier creates a new DefaultVerifier
func NewDefaultVerifier() *DefaultVerifier {
	return &DefaultVerifier{}
}

// Verify implements ApprovalVerifier
func (v *DefaultVerifier) Verify(pubKey crypto.PublicKey, message, signatureB64 string) error {
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}

	digest := sha256.Sum256([]byte(message))

	switch key := pubKey.(type) {
	case *rsa.PublicKey:
		if err := rsa.VerifyPKCS1v15(key, crypto.SHA256, digest[:], sig); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
	case *ecdsa.PublicKey:
		if !ecdsa.VerifyASN1(key, digest[:], sig) {
			return ErrInvalidSignature
		}
	case ed25519.PublicKey:
		if !ed25519.Verify(key, []byte(message), sig) {
			return ErrInvalidSignature
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedKey, pubKey)
	}

	return nil
}

// Verify checks signatureB64 with a DefaultVerifier
func Verify(pubKey crypto.PublicKey, message, signatureB64 string) error {
	return NewDefaultVerifier().Verify(pubKey, message, signatureB64)
}
