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

// Package testutil holds key fixtures shared by package tests.
package testutil

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/youmark/pkcs8"
)

// RSAKey generates a 2048-bit RSA key
func RSAKey(t testing.TB) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

// ECDSAKey generates a P-256 key
func ECDSAKey(t testing.TB) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

// Ed25519Key generates an Ed25519 key
func Ed25519Key(t testing.TB) ed25519.PrivateKey {
	t.Helper()
	_, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return key
}

// PKCS1PEM encodes key as an "RSA PRIVATE KEY" block, encrypted when passphrase is set
func PKCS1PEM(t testing.TB, key *rsa.PrivateKey, passphrase string) []byte {
	t.Helper()
	der := x509.MarshalPKCS1PrivateKey(key)
	if passphrase == "" {
		return pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: der})
	}

	//nolint:staticcheck // legacy encrypted PEM is what openssl genrsa -aes256 writes
	block, err := x509.EncryptPEMBlock(rand.Reader, "RSA PRIVATE KEY", der, []byte(passphrase), x509.PEMCipherAES256)
	require.NoError(t, err)
	return pem.EncodeToMemory(block)
}

// PKCS8PEM encodes any supported private key as a "PRIVATE KEY" block
func PKCS8PEM(t testing.TB, key any) []byte {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

// EncryptedPKCS8PEM encodes key as an "ENCRYPTED PRIVATE KEY" block (PBES2, AES-256-CBC),
// the format openssl genpkey -aes256 writes
func EncryptedPKCS8PEM(t testing.TB, key any, passphrase string) []byte {
	t.Helper()
	der, err := pkcs8.MarshalPrivateKey(key, []byte(passphrase), nil)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "ENCRYPTED PRIVATE KEY", Bytes: der})
}

// WriteKeyFile writes data into a fresh temp dir and returns the path
func WriteKeyFile(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "private.pem")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// RSAKeyFile generates an RSA key, writes it as PKCS#1 PEM and returns the path and key
func RSAKeyFile(t testing.TB, passphrase string) (string, *rsa.PrivateKey) {
	t.Helper()
	key := RSAKey(t)
	return WriteKeyFile(t, PKCS1PEM(t, key, passphrase)), key
}
