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

package resources

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/useme-com/transferwise-go/pkg/apierror"
	"github.com/useme-com/transferwise-go/pkg/client"
)

// Requester sends one logical, authenticated API request
type Requester interface {
	Request(ctx context.Context, method, path string, payload any) (*client.Response, error)
}

var _ Requester = (*client.Client)(nil)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their keyword names (profile_id, source_amount).
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	v.RegisterStructValidation(validateQuoteAmounts, QuoteParams{})

	return v
}

func validateParams(op string, params any) error {
	if err := validate.Struct(params); err != nil {
		return apierror.Wrap(apierror.KindValidation, op, err)
	}
	return nil
}

func newRequester(cfg client.Config, opts ...client.Option) (Requester, error) {
	c, err := client.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}
