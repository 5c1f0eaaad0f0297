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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/useme-com/transferwise-go/pkg/binder"
	"github.com/useme-com/transferwise-go/pkg/client"
	"github.com/useme-com/transferwise-go/pkg/config"
	"github.com/useme-com/transferwise-go/pkg/resources"
)

// Reads ./transferwise.yaml and TRANSFERWISE_* variables, then quotes,
// creates and funds a transfer on the sandbox.
func main() {
	fmt.Println("transferwise-go - Quote, Transfer and Fund Example")
	fmt.Println("==================================================")

	ctx := context.Background()

	fmt.Println("\n1. Loading configuration...")
	cfg, err := config.Load(os.Getenv("TRANSFERWISE_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	fmt.Printf("   API: %s\n", cfg.APIBaseURL)

	opts := cfg.ClientOptions(logger)

	fmt.Println("\n2. Creating binders...")
	profiles, err := binder.NewProfiles(cfg.ClientConfig(), binder.Bindings{
		"Fund": {"profile_id": "profile_id"},
	}, opts...)
	if err != nil {
		log.Fatalf("Failed to create profiles binder: %v", err)
	}
	quotes, err := binder.NewQuotes(cfg.ClientConfig(), binder.Bindings{
		"CreateQuote": {"profile_id": "profile_id"},
	}, opts...)
	if err != nil {
		log.Fatalf("Failed to create quotes binder: %v", err)
	}
	accounts, err := binder.NewAccounts(cfg.ClientConfig(), binder.Bindings{
		"CreateEmailRecipient": {"profile_id": "profile_id"},
	}, opts...)
	if err != nil {
		log.Fatalf("Failed to create accounts binder: %v", err)
	}
	transfers, err := binder.NewTransfers(cfg.ClientConfig(), nil, opts...)
	if err != nil {
		log.Fatalf("Failed to create transfers binder: %v", err)
	}

	fmt.Println("\n3. Selecting profile...")
	profileID := cfg.ProfileID
	if profileID == 0 {
		profileID, err = firstProfile(ctx, profiles)
		if err != nil {
			log.Fatalf("Failed to select profile: %v", err)
		}
	}
	for _, b := range []interface{ Set(string, any) }{profiles, quotes, accounts} {
		b.Set("profile_id", profileID)
	}
	fmt.Printf("   Profile: %d\n", profileID)

	fmt.Println("\n4. Creating quote for 100 GBP -> EUR...")
	var quote struct {
		ID   string  `json:"id"`
		Rate float64 `json:"rate"`
	}
	mustCall(ctx, quotes.Call, "CreateQuote", binder.Kwargs{
		"source_currency": "GBP",
		"target_currency": "EUR",
		"source_amount":   100,
	}, &quote)
	fmt.Printf("   Quote: %s (rate %.4f)\n", quote.ID, quote.Rate)

	fmt.Println("\n5. Creating email recipient...")
	var recipient struct {
		ID int64 `json:"id"`
	}
	mustCall(ctx, accounts.Call, "CreateEmailRecipient", binder.Kwargs{
		"account_name": "Jane Doe",
		"currency":     "EUR",
		"email":        "jane.doe@example.com",
	}, &recipient)
	fmt.Printf("   Recipient: %d\n", recipient.ID)

	fmt.Println("\n6. Creating transfer...")
	var transfer struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	mustCall(ctx, transfers.Call, "CreateTransfer", binder.Kwargs{
		"target_account":    recipient.ID,
		"quote_id":          quote.ID,
		"details_reference": "example",
	}, &transfer)
	fmt.Printf("   Transfer: %d (%s)\n", transfer.ID, transfer.Status)

	fmt.Println("\n7. Funding transfer from balance (step-up approval)...")
	var payment struct {
		Status string `json:"status"`
	}
	mustCall(ctx, profiles.Call, "Fund", binder.Kwargs{"transfer_id": transfer.ID}, &payment)
	fmt.Printf("   Payment: %s\n", payment.Status)

	fmt.Println("\nExample completed!")
}

type callFunc func(ctx context.Context, name string, kwargs binder.Kwargs) (*client.Response, error)

func mustCall(ctx context.Context, call callFunc, name string, kwargs binder.Kwargs, out any) {
	resp, err := call(ctx, name, kwargs)
	if err != nil {
		log.Fatalf("%s failed: %v", name, err)
	}
	if !resp.OK() {
		log.Fatalf("%s refused with %d: %s", name, resp.StatusCode, resp.Body)
	}
	if err := resp.Decode(out); err != nil {
		log.Fatalf("%s: %v", name, err)
	}
}

func firstProfile(ctx context.Context, profiles *binder.Binder[*resources.Profiles]) (int64, error) {
	resp, err := profiles.Call(ctx, "GetProfiles", nil)
	if err != nil {
		return 0, err
	}
	if !resp.OK() {
		return 0, fmt.Errorf("profiles request refused with %d", resp.StatusCode)
	}

	var list []struct {
		ID   int64  `json:"id"`
		Type string `json:"type"`
	}
	if err := resp.Decode(&list); err != nil {
		return 0, err
	}
	for _, p := range list {
		if p.Type == "personal" {
			return p.ID, nil
		}
	}
	return 0, errors.New("no personal profile")
}
