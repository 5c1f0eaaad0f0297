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

package apierror

import (
	"errors"
	"net/http"
	"strings"
)

// Kind tags an Error with the failure class callers match on.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindKeyLoad: private key file unreadable or unparsable.
	KindKeyLoad
	// KindValidation: invalid business arguments, raised before any network I/O.
	KindValidation
	// KindConnection: transport-level failure on the initial or the step-up call.
	KindConnection
	// KindDecode: the final response body is not valid JSON.
	KindDecode
	// KindSigning: the step-up challenge could not be signed.
	KindSigning
	// KindAttributeNotFound: a binder method or binding source does not exist.
	KindAttributeNotFound
	// KindUndefinedAPI: a binder was configured without a wrapped resource.
	KindUndefinedAPI
)

// String returns the human-readable name of the kind
func (k Kind) String() string {
	switch k {
	case KindKeyLoad:
		return "key load"
	case KindValidation:
		return "validation"
	case KindConnection:
		return "connection"
	case KindDecode:
		return "decode"
	case KindSigning:
		return "signing"
	case KindAttributeNotFound:
		return "attribute not found"
	case KindUndefinedAPI:
		return "undefined api"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by this module.
//
// Request and Response are only set for KindConnection and KindDecode;
// Response is nil when the transport failed before any response arrived.
type Error struct {
	Kind     Kind
	Op       string
	Message  string
	Request  *http.Request
	Response *http.Response
	Err      error
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrKeyLoad           = &Error{Kind: KindKeyLoad}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrConnection        = &Error{Kind: KindConnection}
	ErrDecode            = &Error{Kind: KindDecode}
	ErrSigning           = &Error{Kind: KindSigning}
	ErrAttributeNotFound = &Error{Kind: KindAttributeNotFound}
	ErrUndefinedAPI      = &Error{Kind: KindUndefinedAPI}
)

// New creates an Error without an underlying cause.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap creates an Error around err.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Error formats the operation, kind, message and cause
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("transferwise")
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}
