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

// Package apierror defines the tagged error returned by every transferwise-go package.
//
// Callers match on the Kind rather than on concrete transport error types:
//
//	resp, err := c.Request(ctx, http.MethodGet, "v1/profiles", nil)
//	switch {
//	case errors.Is(err, apierror.ErrConnection):
//	    // DNS, TCP, TLS, timeout or cancellation; err.(*apierror.Error).Request is set
//	case err != nil:
//	    return err
//	}
//
// Ordinary 4xx/5xx answers from the provider are not errors. They come back
// as a *client.Response whose body holds the provider's error payload.
package apierror
