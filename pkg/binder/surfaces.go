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

package binder

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/useme-com/transferwise-go/pkg/apierror"
	"github.com/useme-com/transferwise-go/pkg/client"
	"github.com/useme-com/transferwise-go/pkg/resources"
)

// Method adapts a resource method taking a params struct. Kwargs are decoded
// into P by their mapstructure names; a keyword P does not declare is an
// error unless P collects the rest with a ",remain" field.
func Method[P any](fn func(context.Context, P) (*client.Response, error)) MethodFunc {
	return func(ctx context.Context, kwargs Kwargs) (*client.Response, error) {
		var params P
		if err := decodeKwargs(kwargs, &params); err != nil {
			return nil, err
		}
		return fn(ctx, params)
	}
}

// NoArgs adapts a resource method without parameters
func NoArgs(fn func(context.Context) (*client.Response, error)) MethodFunc {
	return func(ctx context.Context, kwargs Kwargs) (*client.Response, error) {
		if len(kwargs) > 0 {
			return nil, apierror.New(apierror.KindValidation, "decode arguments",
				fmt.Sprintf("method takes no arguments, got %d", len(kwargs)))
		}
		return fn(ctx)
	}
}

func decodeKwargs(kwargs Kwargs, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return apierror.Wrap(apierror.KindValidation, "decode arguments", err)
	}
	if err := decoder.Decode(map[string]any(kwargs)); err != nil {
		return apierror.Wrap(apierror.KindValidation, "decode arguments", err)
	}
	return nil
}

// AccountsSurface exposes the Accounts operations by method name
func AccountsSurface(a *resources.Accounts) map[string]MethodFunc {
	return map[string]MethodFunc{
		"CreateEmailRecipient":         Method(a.CreateEmailRecipient),
		"CreateRecipient":              Method(a.CreateRecipient),
		"CreateCardRecipient":          Method(a.CreateCardRecipient),
		"CreateCardRecipientByDetails": Method(a.CreateCardRecipientByDetails),
		"GetBalance":                   Method(a.GetBalance),
		"GetRequirements":              Method(a.GetRequirements),
	}
}

// ProfilesSurface exposes the Profiles operations by method name
func ProfilesSurface(p *resources.Profiles) map[string]MethodFunc {
	return map[string]MethodFunc{
		"CreatePersonalProfile": Method(p.CreatePersonalProfile),
		"CreateBusinessProfile": Method(p.CreateBusinessProfile),
		"GetProfiles":           NoArgs(p.GetProfiles),
		"Fund":                  Method(p.Fund),
	}
}

// QuotesSurface exposes the Quotes operations by method name
func QuotesSurface(q *resources.Quotes) map[string]MethodFunc {
	return map[string]MethodFunc{
		"CreateQuote":            Method(q.CreateQuote),
		"GetAccountRequirements": Method(q.GetAccountRequirements),
	}
}

// TransfersSurface exposes the Transfers operations by method name
func TransfersSurface(t *resources.Transfers) map[string]MethodFunc {
	return map[string]MethodFunc{
		"CreateTransfer": Method(t.CreateTransfer),
		"List":           Method(t.List),
		"Cancel":         Method(t.Cancel),
	}
}

// CardTokenizationSurface exposes card tokenization by method name
func CardTokenizationSurface(c *resources.CardTokenization) map[string]MethodFunc {
	return map[string]MethodFunc{
		"Tokenize": Method(c.Tokenize),
	}
}

// NewAccounts creates a binder over resources.Accounts
func NewAccounts(cfg client.Config, bindings Bindings, opts ...client.Option) (*Binder[*resources.Accounts], error) {
	return New(Config[*resources.Accounts]{
		Factory:  resources.NewAccounts,
		Surface:  AccountsSurface,
		Bindings: bindings,
	}, cfg, opts...)
}

// NewProfiles creates a binder over resources.Profiles
func NewProfiles(cfg client.Config, bindings Bindings, opts ...client.Option) (*Binder[*resources.Profiles], error) {
	return New(Config[*resources.Profiles]{
		Factory:  resources.NewProfiles,
		Surface:  ProfilesSurface,
		Bindings: bindings,
	}, cfg, opts...)
}

// NewQuotes creates a binder over resources.Quotes
func NewQuotes(cfg client.Config, bindings Bindings, opts ...client.Option) (*Binder[*resources.Quotes], error) {
	return New(Config[*resources.Quotes]{
		Factory:  resources.NewQuotes,
		Surface:  QuotesSurface,
		Bindings: bindings,
	}, cfg, opts...)
}

// NewTransfers creates a binder over resources.Transfers
func NewTransfers(cfg client.Config, bindings Bindings, opts ...client.Option) (*Binder[*resources.Transfers], error) {
	return New(Config[*resources.Transfers]{
		Factory:  resources.NewTransfers,
		Surface:  TransfersSurface,
		Bindings: bindings,
	}, cfg, opts...)
}

// NewCardTokenization creates a binder over resources.CardTokenization
func NewCardTokenization(cfg client.Config, bindings Bindings, opts ...client.Option) (*Binder[*resources.CardTokenization], error) {
	return New(Config[*resources.CardTokenization]{
		Factory:  resources.NewCardTokenization,
		Surface:  CardTokenizationSurface,
		Bindings: bindings,
	}, cfg, opts...)
}
