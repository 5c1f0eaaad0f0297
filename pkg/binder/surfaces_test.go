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
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/useme-com/transferwise-go/internal/testutil"
	"github.com/useme-com/transferwise-go/pkg/apierror"
	"github.com/useme-com/transferwise-go/pkg/client"
	"github.com/useme-com/transferwise-go/pkg/resources"
)

type sentRequest struct {
	Method  string
	Path    string
	Payload map[string]any
}

// capturingRequester records what a resource would send
type capturingRequester struct {
	mu   sync.Mutex
	sent []sentRequest
}

func (c *capturingRequester) Request(ctx context.Context, method, path string, payload any) (*client.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := sentRequest{Method: method, Path: path}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &req.Payload); err != nil {
			return nil, err
		}
	}
	c.sent = append(c.sent, req)

	return &client.Response{StatusCode: http.StatusOK}, nil
}

func TestQuotesBinder_BindsProfile(t *testing.T) {
	r := &capturingRequester{}
	b, err := Wrap(resources.QuotesFrom(r), Config[*resources.Quotes]{
		Surface:  QuotesSurface,
		Bindings: Bindings{"CreateQuote": {"profile_id": "current_profile_id"}},
	})
	require.NoError(t, err)
	b.Set("current_profile_id", 42)

	_, err = b.Call(context.Background(), "CreateQuote", Kwargs{
		"source_currency": "gbp",
		"target_currency": "eur",
		"source_amount":   100,
	})
	require.NoError(t, err)

	_, err = b.Call(context.Background(), "CreateQuote", Kwargs{
		"profile_id":      7,
		"source_currency": "gbp",
		"target_currency": "eur",
		"target_amount":   "12.5",
	})
	require.NoError(t, err)

	require.Len(t, r.sent, 2)
	assert.Equal(t, "v2/quotes", r.sent[0].Path)
	assert.Equal(t, float64(42), r.sent[0].Payload["profile"])
	assert.Equal(t, "GBP", r.sent[0].Payload["sourceCurrency"])
	assert.Equal(t, float64(100), r.sent[0].Payload["sourceAmount"])

	assert.Equal(t, float64(7), r.sent[1].Payload["profile"])
	assert.Equal(t, 12.5, r.sent[1].Payload["targetAmount"])
}

func TestQuotesBinder_ValidationStillApplies(t *testing.T) {
	r := &capturingRequester{}
	b, err := Wrap(resources.QuotesFrom(r), Config[*resources.Quotes]{
		Surface:  QuotesSurface,
		Bindings: Bindings{"CreateQuote": {"profile_id": "current_profile_id"}},
	})
	require.NoError(t, err)
	b.Set("current_profile_id", 42)

	_, err = b.Call(context.Background(), "CreateQuote", Kwargs{
		"source_currency": "GBP",
		"target_currency": "EUR",
		"source_amount":   100,
		"target_amount":   100,
	})

	assert.True(t, errors.Is(err, apierror.ErrValidation))
	assert.Empty(t, r.sent)
}

func TestMethod_UnknownKeyword(t *testing.T) {
	r := &capturingRequester{}
	b, err := Wrap(resources.TransfersFrom(r), Config[*resources.Transfers]{Surface: TransfersSurface})
	require.NoError(t, err)

	_, err = b.Call(context.Background(), "Cancel", Kwargs{"transfer_id": 7, "force": true})

	assert.True(t, errors.Is(err, apierror.ErrValidation))
	assert.Contains(t, err.Error(), "force")
	assert.Empty(t, r.sent)
}

func TestMethod_RemainingKeywordsBecomeDetails(t *testing.T) {
	r := &capturingRequester{}
	b, err := Wrap(resources.TransfersFrom(r), Config[*resources.Transfers]{
		Surface:  TransfersSurface,
		Bindings: Bindings{"CreateTransfer": {"transaction_id": "next_transaction_id"}},
	})
	require.NoError(t, err)
	b.Provide("next_transaction_id", func(ctx context.Context) (any, error) {
		return "54a6bc09-cef9-49a8-9041-f1f0c654cd88", nil
	})

	_, err = b.Call(context.Background(), "CreateTransfer", Kwargs{
		"target_account":     9,
		"quote_id":           "q",
		"details_reference":  "invoice 12",
		"sourceOfFundsOther": "freelance",
	})
	require.NoError(t, err)

	require.Len(t, r.sent, 1)
	assert.Equal(t, "54a6bc09-cef9-49a8-9041-f1f0c654cd88", r.sent[0].Payload["customerTransactionId"])
	assert.Equal(t, map[string]any{
		"reference":          "invoice 12",
		"sourceOfFundsOther": "freelance",
	}, r.sent[0].Payload["details"])
}

func TestNoArgs_RejectsKeywords(t *testing.T) {
	r := &capturingRequester{}
	b, err := Wrap(resources.ProfilesFrom(r), Config[*resources.Profiles]{Surface: ProfilesSurface})
	require.NoError(t, err)

	_, err = b.Call(context.Background(), "GetProfiles", Kwargs{"profile_id": 1})
	assert.True(t, errors.Is(err, apierror.ErrValidation))

	_, err = b.Call(context.Background(), "GetProfiles", nil)
	require.NoError(t, err)
	assert.Equal(t, []sentRequest{{Method: "GET", Path: "v1/profiles"}}, r.sent)
}

func TestSurfaces(t *testing.T) {
	r := &capturingRequester{}

	assert.ElementsMatch(t, []string{
		"CreateEmailRecipient", "CreateRecipient", "CreateCardRecipient",
		"CreateCardRecipientByDetails", "GetBalance", "GetRequirements",
	}, keys(AccountsSurface(resources.AccountsFrom(r))))
	assert.ElementsMatch(t, []string{
		"CreatePersonalProfile", "CreateBusinessProfile", "GetProfiles", "Fund",
	}, keys(ProfilesSurface(resources.ProfilesFrom(r))))
	assert.ElementsMatch(t, []string{"CreateQuote", "GetAccountRequirements"},
		keys(QuotesSurface(resources.QuotesFrom(r))))
	assert.ElementsMatch(t, []string{"CreateTransfer", "List", "Cancel"},
		keys(TransfersSurface(resources.TransfersFrom(r))))
	assert.ElementsMatch(t, []string{"Tokenize"},
		keys(CardTokenizationSurface(resources.CardTokenizationFrom(r))))
}

func TestReadyMadeBinders(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.RequestURI())
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	keyPath, _ := testutil.RSAKeyFile(t, "")
	cfg := client.Config{APIBaseURL: server.URL + "/", APIToken: "t", PrivateKeyPath: keyPath}
	ctx := context.Background()

	accounts, err := NewAccounts(cfg, Bindings{"GetBalance": {"profile_id": "profile"}})
	require.NoError(t, err)
	accounts.Set("profile", 42)
	_, err = accounts.Call(ctx, "GetBalance", nil)
	require.NoError(t, err)

	profiles, err := NewProfiles(cfg, nil)
	require.NoError(t, err)
	_, err = profiles.Call(ctx, "GetProfiles", nil)
	require.NoError(t, err)

	quotes, err := NewQuotes(cfg, nil)
	require.NoError(t, err)
	_, err = quotes.Call(ctx, "GetAccountRequirements", Kwargs{"quote_id": "abc"})
	require.NoError(t, err)

	transfers, err := NewTransfers(cfg, nil)
	require.NoError(t, err)
	_, err = transfers.Call(ctx, "Cancel", Kwargs{"transfer_id": 7})
	require.NoError(t, err)

	cards, err := NewCardTokenization(cfg, nil)
	require.NoError(t, err)
	_, err = cards.Call(ctx, "Tokenize", Kwargs{"card_number": "4111111111111111"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /v1/borderless-accounts/?profileId=42",
		"GET /v1/profiles",
		"GET /v2/quotes/abc/account-requirements",
		"PUT /v1/transfers/7/cancel",
		"POST /v3/card",
	}, paths)
}

func keys(m map[string]MethodFunc) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
