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

package keys

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	sagecrypto "github.com/sage-x-project/sage/pkg/agent/crypto"
	"github.com/useme-com/transferwise-go/pkg/apierror"
	"github.com/youmark/pkcs8"
	"golang.org/x/crypto/ssh"
)

const encryptedPKCS8Block = "ENCRYPTED PRIVATE KEY"

// Algorithm identifies the signature scheme of a SigningKey
type Algorithm string

const (
	AlgorithmRSA     Algorithm = "rsa"
	AlgorithmECDSA   Algorithm = "ecdsa"
	AlgorithmEd25519 Algorithm = "ed25519"
)

// SigningKey is a parsed private key able to produce step-up signatures.
// It is read-only after construction and safe for concurrent use.
type SigningKey struct {
	signer    crypto.Signer
	algorithm Algorithm
}

// NewSigningKey wraps an RSA, ECDSA or Ed25519 crypto.Signer
func NewSigningKey(signer crypto.Signer) (*SigningKey, error) {
	if signer == nil {
		return nil, apierror.New(apierror.KindKeyLoad, "new signing key", "signer cannot be nil")
	}

	var alg Algorithm
	switch signer.Public().(type) {
	case *rsa.PublicKey:
		alg = AlgorithmRSA
	case *ecdsa.PublicKey:
		alg = AlgorithmECDSA
	case ed25519.PublicKey:
		alg = AlgorithmEd25519
	default:
		return nil, apierror.New(apierror.KindKeyLoad, "new signing key",
			fmt.Sprintf("unsupported key type %T", signer.Public()))
	}

	return &SigningKey{signer: signer, algorithm: alg}, nil
}

// Load reads a PEM-encoded private key from path.
// passphrase is only used when the key is encrypted.
func Load(path, passphrase string) (*SigningKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindKeyLoad, "load private key", err)
	}

	return Parse(data, passphrase)
}

// Parse decodes PKCS#1, PKCS#8, SEC1 and OpenSSH private keys, decrypting
// encrypted PKCS#8, legacy encrypted PEM and encrypted OpenSSH keys with passphrase.
func Parse(pemBytes []byte, passphrase string) (*SigningKey, error) {
	if block, _ := pem.Decode(pemBytes); block != nil && block.Type == encryptedPKCS8Block {
		return parseEncryptedPKCS8(block.Bytes, passphrase)
	}

	raw, err := ssh.ParseRawPrivateKey(pemBytes)

	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) {
		if passphrase == "" {
			return nil, apierror.New(apierror.KindKeyLoad, "parse private key", "key is encrypted and no passphrase was given")
		}
		raw, err = ssh.ParseRawPrivateKeyWithPassphrase(pemBytes, []byte(passphrase))
	}
	if err != nil {
		return nil, apierror.Wrap(apierror.KindKeyLoad, "parse private key", err)
	}

	// OpenSSH ed25519 keys come back as a pointer
	if k, ok := raw.(*ed25519.PrivateKey); ok {
		raw = *k
	}

	signer, ok := raw.(crypto.Signer)
	if !ok {
		return nil, apierror.New(apierror.KindKeyLoad, "parse private key",
			fmt.Sprintf("key type %T cannot sign", raw))
	}

	return NewSigningKey(signer)
}

func parseEncryptedPKCS8(der []byte, passphrase string) (*SigningKey, error) {
	if passphrase == "" {
		return nil, apierror.New(apierror.KindKeyLoad, "parse private key", "key is encrypted and no passphrase was given")
	}

	raw, err := pkcs8.ParsePKCS8PrivateKey(der, []byte(passphrase))
	if err != nil {
		return nil, apierror.Wrap(apierror.KindKeyLoad, "parse private key", err)
	}

	signer, ok := raw.(crypto.Signer)
	if !ok {
		return nil, apierror.New(apierror.KindKeyLoad, "parse private key",
			fmt.Sprintf("key type %T cannot sign", raw))
	}

	return NewSigningKey(signer)
}

// FromKeyPair adapts a SAGE agent key pair whose private key implements crypto.Signer
func FromKeyPair(keyPair sagecrypto.KeyPair) (*SigningKey, error) {
	if keyPair == nil {
		return nil, apierror.New(apierror.KindKeyLoad, "from key pair", "key pair cannot be nil")
	}

	priv := keyPair.PrivateKey()
	if k, ok := priv.(*ed25519.PrivateKey); ok {
		priv = *k
	}

	signer, ok := priv.(crypto.Signer)
	if !ok {
		return nil, apierror.New(apierror.KindKeyLoad, "from key pair",
			fmt.Sprintf("key pair %q holds a %T that cannot sign", keyPair.ID(), priv))
	}

	return NewSigningKey(signer)
}

// Signer returns the underlying crypto.Signer
func (k *SigningKey) Signer() crypto.Signer {
	return k.signer
}

// Public returns the public half of the key
func (k *SigningKey) Public() crypto.PublicKey {
	return k.signer.Public()
}

// Algorithm returns the signature scheme of the key
func (k *SigningKey) Algorithm() Algorithm {
	return k.algorithm
}
