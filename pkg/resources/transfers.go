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
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/useme-com/transferwise-go/pkg/client"
)

const (
	transfersPath    = "v1/transfers"
	defaultListLimit = 100
)

// Transfers creates, lists and cancels transfers
type Transfers struct {
	requester Requester
}

// NewTransfers creates a Transfers client with its own engine
func NewTransfers(cfg client.Config, opts ...client.Option) (*Transfers, error) {
	r, err := newRequester(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return TransfersFrom(r), nil
}

// TransfersFrom creates a Transfers client over an existing Requester
func TransfersFrom(r Requester) *Transfers {
	return &Transfers{requester: r}
}

// TransferParams describes a transfer. TransactionID is the idempotency key
// of the transfer; a random UUID is used when it is empty. Keywords that are
// not listed here are merged into the transfer details.
type TransferParams struct {
	TargetAccount   int64          `mapstructure:"target_account"           validate:"required"`
	QuoteID         string         `mapstructure:"quote_id"                 validate:"required"`
	TransactionID   string         `mapstructure:"transaction_id"           validate:"omitempty,uuid"`
	Reference       string         `mapstructure:"details_reference"`
	TransferPurpose string         `mapstructure:"details_transfer_purpose"`
	SourceOfFunds   string         `mapstructure:"details_source_of_funds"`
	Details         map[string]any `mapstructure:",remain"`
}

// CreateTransfer creates a transfer for a quote and a recipient account
func (t *Transfers) CreateTransfer(ctx context.Context, p TransferParams) (*client.Response, error) {
	if err := validateParams("create transfer", p); err != nil {
		return nil, err
	}

	transactionID := p.TransactionID
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	details := make(map[string]any, len(p.Details)+3)
	if p.Reference != "" {
		details["reference"] = p.Reference
	}
	if p.TransferPurpose != "" {
		details["transferPurpose"] = p.TransferPurpose
	}
	if p.SourceOfFunds != "" {
		details["sourceOfFunds"] = p.SourceOfFunds
	}
	for k, v := range p.Details {
		details[k] = v
	}

	payload := transferPayload{
		TargetAccount:         p.TargetAccount,
		QuoteUUID:             p.QuoteID,
		CustomerTransactionID: transactionID,
		Details:               details,
	}
	return t.requester.Request(ctx, http.MethodPost, transfersPath, payload)
}

// ListParams filters the transfer list. Empty filters are not sent; a zero
// Limit means 100.
type ListParams struct {
	ProfileID        int64  `mapstructure:"profile_id"`
	Status           string `mapstructure:"status"`
	SourceCurrency   string `mapstructure:"source_currency"    validate:"omitempty,len=3"`
	CreatedDateStart string `mapstructure:"created_date_start"`
	CreatedDateEnd   string `mapstructure:"created_date_end"`
	Offset           int    `mapstructure:"offset"             validate:"gte=0"`
	Limit            int    `mapstructure:"limit"              validate:"gte=0"`
}

// List returns one page of transfers
func (t *Transfers) List(ctx context.Context, p ListParams) (*client.Response, error) {
	if err := validateParams("list transfers", p); err != nil {
		return nil, err
	}

	limit := p.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	query := url.Values{}
	query.Set("offset", strconv.Itoa(p.Offset))
	query.Set("limit", strconv.Itoa(limit))
	if p.ProfileID != 0 {
		query.Set("profile", strconv.FormatInt(p.ProfileID, 10))
	}
	setIfNotEmpty(query, "status", p.Status)
	setIfNotEmpty(query, "sourceCurrency", p.SourceCurrency)
	setIfNotEmpty(query, "createdDateStart", p.CreatedDateStart)
	setIfNotEmpty(query, "createdDateEnd", p.CreatedDateEnd)

	return t.requester.Request(ctx, http.MethodGet, transfersPath+"/?"+query.Encode(), nil)
}

// CancelParams identifies the transfer to cancel
type CancelParams struct {
	TransferID int64 `mapstructure:"transfer_id" validate:"required"`
}

// Cancel cancels a transfer that has not been funded yet
func (t *Transfers) Cancel(ctx context.Context, p CancelParams) (*client.Response, error) {
	if err := validateParams("cancel transfer", p); err != nil {
		return nil, err
	}

	return t.requester.Request(ctx, http.MethodPut, fmt.Sprintf("%s/%d/cancel", transfersPath, p.TransferID), nil)
}

type transferPayload struct {
	TargetAccount         int64          `json:"targetAccount"`
	QuoteUUID             string         `json:"quoteUuid"`
	CustomerTransactionID string         `json:"customerTransactionId"`
	Details               map[string]any `json:"details"`
}

func setIfNotEmpty(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
