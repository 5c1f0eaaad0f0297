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

// Package keys loads the private key used to answer step-up approval challenges.
//
// # Loading From Disk
//
//	key, err := keys.Load("/etc/transferwise/private.pem", "")
//	if err != nil {
//	    log.Fatal(err) // apierror.KindKeyLoad
//	}
//
// Encrypted keys take their passphrase as the second argument:
//
//	key, err := keys.Load("/etc/transferwise/private.pem", os.Getenv("TW_KEY_PASSPHRASE"))
//
// # Supported Formats
//
//   - PKCS#1 "RSA PRIVATE KEY" (the format TransferWise documents)
//   - PKCS#8 "PRIVATE KEY" holding RSA, ECDSA or Ed25519
//   - SEC1 "EC PRIVATE KEY"
//   - OpenSSH "OPENSSH PRIVATE KEY", with or without passphrase
//   - legacy encrypted PEM (Proc-Type: 4,ENCRYPTED)
//
// Encrypted PKCS#8 ("ENCRYPTED PRIVATE KEY") is not supported; convert it
// with `openssl rsa -aes256` first.
//
// # Other Key Sources
//
// Keys held elsewhere (an HSM, a KMS-backed crypto.Signer, a SAGE agent key
// pair) are wrapped with NewSigningKey or FromKeyPair.
package keys
