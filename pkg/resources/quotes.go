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
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/useme-com/transferwise-go/pkg/client"
)

const quotesPath = "v2/quotes"

// Quotes prices transfers
type Quotes struct {
	requester Requester
}

// NewQuotes creates a Quotes client with its own engine
func NewQuotes(cfg client.Config, opts ...client.Option) (*Quotes, error) {
	r, err := newRequester(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return QuotesFrom(r), nil
}

// QuotesFrom creates a Quotes client over an existing Requester
func QuotesFrom(r Requester) *Quotes {
	return &Quotes{requester: r}
}

// QuoteParams describes a quote. Exactly one of SourceAmount and
// TargetAmount must be set; zero means unset.
type QuoteParams struct {
	ProfileID      int64   `mapstructure:"profile_id"      validate:"required"`
	SourceCurrency string  `mapstructure:"source_currency" validate:"required,len=3"`
	TargetCurrency string  `mapstructure:"target_currency" validate:"required,len=3"`
	SourceAmount   float64 `mapstructure:"source_amount"   validate:"gte=0"`
	TargetAmount   float64 `mapstructure:"target_amount"   validate:"gte=0"`
	TargetAccount  int64   `mapstructure:"target_account"`
}

func validateQuoteAmounts(sl validator.StructLevel) {
	p := sl.Current().Interface().(QuoteParams)
	if (p.SourceAmount != 0) == (p.TargetAmount != 0) {
		sl.ReportError(p.SourceAmount, "source_amount", "SourceAmount", "source_xor_target", "")
	}
}

// CreateQuote creates a quote for a fixed source or a fixed target amount
func (q *Quotes) CreateQuote(ctx context.Context, p QuoteParams) (*client.Response, error) {
	if err := validateParams("create quote", p); err != nil {
		return nil, err
	}

	payload := quotePayload{
		Profile:        p.ProfileID,
		SourceCurrency: strings.ToUpper(p.SourceCurrency),
		TargetCurrency: strings.ToUpper(p.TargetCurrency),
		TargetAccount:  p.TargetAccount,
	}
	if p.SourceAmount != 0 {
		payload.SourceAmount = &p.SourceAmount
	}
	if p.TargetAmount != 0 {
		payload.TargetAmount = &p.TargetAmount
	}
	return q.requester.Request(ctx, http.MethodPost, quotesPath, payload)
}

// AccountRequirementsParams identifies a quote
type AccountRequirementsParams struct {
	QuoteID string `mapstructure:"quote_id" validate:"required"`
}

// GetAccountRequirements returns the recipient fields required by a quote
func (q *Quotes) GetAccountRequirements(ctx context.Context, p AccountRequirementsParams) (*client.Response, error) {
	if err := validateParams("get account requirements", p); err != nil {
		return nil, err
	}

	path := quotesPath + "/" + url.PathEscape(p.QuoteID) + "/account-requirements"
	return q.requester.Request(ctx, http.MethodGet, path, nil)
}

type quotePayload struct {
	Profile        int64    `json:"profile"`
	SourceCurrency string   `json:"sourceCurrency"`
	TargetCurrency string   `json:"targetCurrency"`
	TargetAmount   *float64 `json:"targetAmount"`
	SourceAmount   *float64 `json:"sourceAmount"`
	TargetAccount  int64    `json:"targetAccount,omitempty"`
}
