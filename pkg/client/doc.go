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

// Package client provides the authenticated request engine for the TransferWise API.
//
// Every request carries the bearer token, and step-up approval ("2FA")
// challenges are answered transparently with the configured private key.
//
// # Basic Usage
//
//	c, err := client.New(client.Config{
//	    APIBaseURL:     transferwise.DefaultSandboxURL,
//	    APIToken:       os.Getenv("TW_API_TOKEN"),
//	    PrivateKeyPath: "private.pem",
//	})
//	if err != nil {
//	    log.Fatal(err) // apierror.KindKeyLoad when the key cannot be loaded
//	}
//
//	resp, err := c.Get(ctx, "v1/profiles")
//	if err != nil {
//	    log.Fatal(err) // apierror.KindConnection on transport failures
//	}
//	if !resp.OK() {
//	    log.Printf("provider error %d: %s", resp.StatusCode, resp.Body)
//	}
//
// # Step-Up Approval
//
// A sensitive call (funding a transfer, reading statements) may be refused
// with a non-success status and these headers:
//
//	x-2fa-approval-result: REJECTED
//	x-2fa-approval: <one-time token>
//
// The client signs the token with SHA256withRSA (or the scheme of the key in
// use), then replays the same method, URL and body once with
//
//	x-2fa-approval: <one-time token>
//	X-Signature: <base64 signature>
//
// and returns the replay's response, successful or not. There is never a
// second replay.
//
// # Provider Errors
//
// 4xx/5xx answers without a rejection marker are not converted to Go errors.
// The provider's error payload is returned in Response.Body for the caller to
// inspect.
//
// # Options
//
//	c, err := client.New(cfg,
//	    client.WithTimeout(30*time.Second),
//	    client.WithLogger(logger),
//	    client.WithObserver(collector),
//	    client.WithHTTPClient(&http.Client{Transport: tr}),
//	)
package client
