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
	"net/http"

	"github.com/useme-com/transferwise-go/pkg/client"
)

const cardPath = "v3/card"

// CardTokenization exchanges card numbers for card tokens
type CardTokenization struct {
	requester Requester
}

// NewCardTokenization creates a CardTokenization client with its own engine
func NewCardTokenization(cfg client.Config, opts ...client.Option) (*CardTokenization, error) {
	r, err := newRequester(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return CardTokenizationFrom(r), nil
}

// CardTokenizationFrom creates a CardTokenization client over an existing Requester
func CardTokenizationFrom(r Requester) *CardTokenization {
	return &CardTokenization{requester: r}
}

// TokenizeParams holds the card number to tokenize
type TokenizeParams struct {
	CardNumber string `mapstructure:"card_number" validate:"required,credit_card"`
}

// Tokenize returns a token for a card number, usable with
// Accounts.CreateCardRecipient
func (c *CardTokenization) Tokenize(ctx context.Context, p TokenizeParams) (*client.Response, error) {
	if err := validateParams("tokenize card", p); err != nil {
		return nil, err
	}

	return c.requester.Request(ctx, http.MethodPost, cardPath, map[string]string{"cardNumber": p.CardNumber})
}
