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
	"strconv"
	"strings"

	"github.com/useme-com/transferwise-go/pkg/client"
)

const (
	accountsPath            = "v1/accounts"
	accountsV2Path          = "v2/accounts"
	borderlessPath          = "v1/borderless-accounts"
	accountRequirementsPath = "v1/account-requirements"
)

// Accounts manages recipient accounts and balances
type Accounts struct {
	requester Requester
}

// NewAccounts creates an Accounts client with its own engine
func NewAccounts(cfg client.Config, opts ...client.Option) (*Accounts, error) {
	r, err := newRequester(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return AccountsFrom(r), nil
}

// AccountsFrom creates an Accounts client over an existing Requester
func AccountsFrom(r Requester) *Accounts {
	return &Accounts{requester: r}
}

// EmailRecipientParams describes a recipient paid by email
type EmailRecipientParams struct {
	ProfileID   int64  `mapstructure:"profile_id"   validate:"required"`
	AccountName string `mapstructure:"account_name" validate:"required"`
	Currency    string `mapstructure:"currency"     validate:"required,len=3"`
	Email       string `mapstructure:"email"        validate:"required,email"`
}

// CreateEmailRecipient creates a recipient paid by email
func (a *Accounts) CreateEmailRecipient(ctx context.Context, p EmailRecipientParams) (*client.Response, error) {
	if err := validateParams("create email recipient", p); err != nil {
		return nil, err
	}

	payload := recipientPayload{
		Profile:           p.ProfileID,
		AccountHolderName: p.AccountName,
		Currency:          strings.ToUpper(p.Currency),
		Type:              "email",
		Details:           map[string]any{"email": p.Email},
	}
	return a.requester.Request(ctx, http.MethodPost, accountsPath, payload)
}

// RecipientParams describes a recipient of any account type. Keywords that
// are not listed here are collected into Details.
type RecipientParams struct {
	ProfileID   int64          `mapstructure:"profile_id"   validate:"required"`
	AccountName string         `mapstructure:"account_name" validate:"required"`
	Currency    string         `mapstructure:"currency"     validate:"required,len=3"`
	AccountType string         `mapstructure:"account_type"`
	Details     map[string]any `mapstructure:",remain"`
}

// CreateRecipient creates a recipient. The account type defaults to email.
func (a *Accounts) CreateRecipient(ctx context.Context, p RecipientParams) (*client.Response, error) {
	if err := validateParams("create recipient", p); err != nil {
		return nil, err
	}

	payload := recipientPayload{
		Profile:           p.ProfileID,
		AccountHolderName: p.AccountName,
		Currency:          strings.ToUpper(p.Currency),
		Type:              "email",
	}
	if p.AccountType != "" {
		payload.Type = p.AccountType
	}
	if len(p.Details) > 0 {
		payload.Details = p.Details
	}
	return a.requester.Request(ctx, http.MethodPost, accountsPath, payload)
}

// CardRecipientParams describes a card recipient identified by a card token
type CardRecipientParams struct {
	AccountName   string `mapstructure:"account_name"    validate:"required"`
	Currency      string `mapstructure:"currency"        validate:"required,len=3"`
	Country       string `mapstructure:"country"         validate:"required"`
	CardToken     string `mapstructure:"card_token"      validate:"required"`
	OwnerAddress  string `mapstructure:"owner_address"`
	OwnerCountry  string `mapstructure:"owner_country"`
	OwnerPostCode string `mapstructure:"owner_post_code"`
	OwnerState    string `mapstructure:"owner_state"`
	OwnerCity     string `mapstructure:"owner_city"`
}

// CreateCardRecipient creates a card recipient from a tokenized card number
func (a *Accounts) CreateCardRecipient(ctx context.Context, p CardRecipientParams) (*client.Response, error) {
	if err := validateParams("create card recipient", p); err != nil {
		return nil, err
	}

	payload := cardRecipientPayload{
		AccountHolderName: p.AccountName,
		Currency:          p.Currency,
		Country:           p.Country,
		Type:              "CARD",
		Details: map[string]any{
			"cardToken": p.CardToken,
			"address": cardAddress{
				FirstLine: p.OwnerAddress,
				Country:   p.OwnerCountry,
				PostCode:  p.OwnerPostCode,
				State:     p.OwnerState,
				City:      p.OwnerCity,
			},
		},
	}
	return a.requester.Request(ctx, http.MethodPost, accountsV2Path, payload)
}

// CardRecipientDetailsParams describes a card recipient whose details are
// supplied verbatim
type CardRecipientDetailsParams struct {
	AccountName string         `mapstructure:"account_name" validate:"required"`
	Currency    string         `mapstructure:"currency"     validate:"required,len=3"`
	Country     string         `mapstructure:"country"      validate:"required"`
	Details     map[string]any `mapstructure:",remain"`
}

// CreateCardRecipientByDetails creates a card recipient with free-form details
func (a *Accounts) CreateCardRecipientByDetails(ctx context.Context, p CardRecipientDetailsParams) (*client.Response, error) {
	if err := validateParams("create card recipient", p); err != nil {
		return nil, err
	}

	payload := cardRecipientPayload{
		AccountHolderName: p.AccountName,
		Currency:          p.Currency,
		Country:           p.Country,
		Type:              "CARD",
	}
	if len(p.Details) > 0 {
		payload.Details = p.Details
	}
	return a.requester.Request(ctx, http.MethodPost, accountsPath, payload)
}

// BalanceParams selects the profile whose balances are listed
type BalanceParams struct {
	ProfileID int64 `mapstructure:"profile_id" validate:"required"`
}

// GetBalance lists the borderless accounts of a profile with their balances
func (a *Accounts) GetBalance(ctx context.Context, p BalanceParams) (*client.Response, error) {
	if err := validateParams("get balance", p); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("profileId", strconv.FormatInt(p.ProfileID, 10))

	return a.requester.Request(ctx, http.MethodGet, borderlessPath+"/?"+query.Encode(), nil)
}

// RequirementsParams selects the recipient requirements of a route. When
// RefreshRequirements is set, the requirements are refreshed for those
// details with a POST.
type RequirementsParams struct {
	SourceCurrency      string         `mapstructure:"source_currency"      validate:"required,len=3"`
	TargetCurrency      string         `mapstructure:"target_currency"      validate:"required,len=3"`
	SourceAmount        float64        `mapstructure:"source_amount"        validate:"gt=0"`
	RefreshRequirements map[string]any `mapstructure:"refresh_requirements"`
}

// GetRequirements returns the fields a recipient must provide for a route
func (a *Accounts) GetRequirements(ctx context.Context, p RequirementsParams) (*client.Response, error) {
	if err := validateParams("get requirements", p); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("source", p.SourceCurrency)
	query.Set("target", p.TargetCurrency)
	query.Set("sourceAmount", strconv.FormatFloat(p.SourceAmount, 'f', -1, 64))
	path := accountRequirementsPath + "?" + query.Encode()

	if len(p.RefreshRequirements) == 0 {
		return a.requester.Request(ctx, http.MethodGet, path, nil)
	}

	payload := map[string]any{
		"type":    "personal",
		"details": p.RefreshRequirements,
	}
	return a.requester.Request(ctx, http.MethodPost, path, payload)
}

type recipientPayload struct {
	Profile           int64          `json:"profile"`
	AccountHolderName string         `json:"accountHolderName"`
	Currency          string         `json:"currency"`
	Type              string         `json:"type"`
	Details           map[string]any `json:"details,omitempty"`
}

type cardRecipientPayload struct {
	AccountHolderName string         `json:"accountHolderName"`
	Currency          string         `json:"currency"`
	Country           string         `json:"country"`
	Type              string         `json:"type"`
	Details           map[string]any `json:"details,omitempty"`
}

type cardAddress struct {
	FirstLine string `json:"firstLine"`
	Country   string `json:"country"`
	PostCode  string `json:"postCode"`
	State     string `json:"state"`
	City      string `json:"city"`
}
