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

package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the final answer to a logical request.
//
// Body holds the JSON body exactly as the provider sent it, including the
// provider's error payload on 4xx/5xx. It is nil when the body was empty.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
}

// OK reports whether the status is below 400, the provider's notion of success
func (r *Response) OK() bool {
	return isSuccess(r.StatusCode)
}

// ApprovalResult returns the x-2fa-approval-result header, if any
func (r *Response) ApprovalResult() string {
	return r.Header.Get(HeaderApprovalResult)
}

// Decode unmarshals the body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 400
}
