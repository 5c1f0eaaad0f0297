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

package signer

import (
	"crypto"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"github.com/useme-com/transferwise-go/pkg/apierror"
	"github.com/useme-com/transferwise-go/pkg/keys"
)

// DefaultSigner implements ApprovalSigner with SHA-256 based signatures:
// RSA PKCS#1 v1.5 and ECDSA (ASN.1) over the SHA-256 digest, Ed25519 over
// the raw message.
type DefaultSigner struct {
	rand io.Reader
}

// NewDefaultSigner creates a new DefaultSigner
func NewDefaultSigner() *DefaultSigner {
	return &DefaultSigner{rand: rand.Reader}
}

// Sign signs message with key and returns the signature in standard base64
func (s *DefaultSigner) Sign(key *keys.SigningKey, message string) (string, error) {
	sig, err := s.SignBytes(key, []byte(message))
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(sig), nil
}

// SignBytes returns the raw signature of message
func (s *DefaultSigner) SignBytes(key *keys.SigningKey, message []byte) ([]byte, error) {
	if key == nil {
		return nil, apierror.New(apierror.KindSigning, "sign", "signing key cannot be nil")
	}

	var (
		sig []byte
		err error
	)
	switch key.Algorithm() {
	case keys.AlgorithmEd25519:
		sig, err = key.Signer().Sign(s.rand, message, crypto.Hash(0))
	default:
		digest := sha256.Sum256(message)
		sig, err = key.Signer().Sign(s.rand, digest[:], crypto.SHA256)
	}
	if err != nil {
		return nil, apierror.Wrap(apierror.KindSigning, "sign", err)
	}

	return sig, nil
}

// Sign signs message with key using a DefaultSigner
func Sign(key *keys.SigningKey, message string) (string, error) {
	return NewDefaultSigner().Sign(key, message)
}
