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

// Package transferwise provides version information for transferwise-go.
package transferwise

const (
	// Version is the current version of transferwise-go
	Version = "0.2.0"

	// DefaultSandboxURL is the base URL of the TransferWise sandbox API
	DefaultSandboxURL = "https://api.sandbox.transferwise.tech/"

	// DefaultLiveURL is the base URL of the TransferWise production API
	DefaultLiveURL = "https://api.transferwise.com/"

	// userAgentName prefixes the User-Agent header sent on every request
	userAgentName = "transferwise-go"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	Version    string
	SandboxURL string
	LiveURL    string
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:    Version,
		SandboxURL: DefaultSandboxURL,
		LiveURL:    DefaultLiveURL,
	}
}

// UserAgent returns the User-Agent header value sent by the request engine.
func UserAgent() string {
	return userAgentName + "/" + Version
}
