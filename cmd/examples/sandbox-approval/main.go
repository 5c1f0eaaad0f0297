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
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	sagekeys "github.com/sage-x-project/sage/pkg/agent/crypto/keys"
	"go.uber.org/zap"

	"github.com/useme-com/transferwise-go/pkg/client"
	"github.com/useme-com/transferwise-go/pkg/keys"
	"github.com/useme-com/transferwise-go/pkg/metrics"
	"github.com/useme-com/transferwise-go/pkg/resources"
	"github.com/useme-com/transferwise-go/pkg/server"
	"github.com/useme-com/transferwise-go/pkg/verifier"
)

const apiToken = "sandbox-token"

// Runs a local step-up approval emulator and funds a transfer against it.
func main() {
	fmt.Println("transferwise-go - Step-Up Approval Sandbox Example")
	fmt.Println("==================================================")

	ctx := context.Background()
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	fmt.Println("\n1. Generating RSA key pair...")
	keyPair, err := sagekeys.GenerateRSAKeyPair()
	if err != nil {
		log.Fatalf("Failed to generate key pair: %v", err)
	}
	signingKey, err := keys.FromKeyPair(keyPair)
	if err != nil {
		log.Fatalf("Failed to adapt key pair: %v", err)
	}
	fmt.Printf("   Key ID: %s (%s)\n", keyPair.ID(), signingKey.Algorithm())

	fmt.Println("\n2. Starting sandbox with step-up approval on payments...")
	resolver := verifier.NewTokenKeyResolver()
	resolver.Register(apiToken, signingKey.Public())

	middleware := server.NewApprovalMiddleware(resolver)
	middleware.SetLogger(logger.Named("sandbox"))
	middleware.SetProtected(func(r *http.Request) bool {
		return strings.HasSuffix(r.URL.Path, "/payments")
	})

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v3/profiles/{profile}/transfers/{transfer}/payments", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"type":"BALANCE","status":"COMPLETED","errorCode":null}`)
	})

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("Failed to listen: %v", err)
	}
	srv := &http.Server{Handler: middleware.Wrap(mux), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Sandbox stopped: %v", err)
		}
	}()
	defer func() { _ = srv.Shutdown(ctx) }()

	baseURL := "http://" + listener.Addr().String() + "/"
	fmt.Printf("   Sandbox: %s\n", baseURL)

	fmt.Println("\n3. Creating Profiles client with metrics...")
	registry := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(registry)
	if err != nil {
		log.Fatalf("Failed to create collector: %v", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		log.Fatalf("Failed to parse sandbox URL: %v", err)
	}
	c, err := client.NewWithCredentials(&client.Credentials{
		BaseURL:    base,
		APIToken:   apiToken,
		PrivateKey: signingKey,
	}, client.WithLogger(logger.Named("client")), client.WithObserver(collector), client.WithTimeout(10*time.Second))
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	profiles := resources.ProfilesFrom(c)

	fmt.Println("\n4. Funding transfer 7 of profile 42...")
	resp, err := profiles.Fund(ctx, resources.FundParams{ProfileID: 42, TransferID: 7})
	if err != nil {
		log.Fatalf("Fund failed: %v", err)
	}
	fmt.Printf("   Status: %d, approval: %s\n", resp.StatusCode, resp.ApprovalResult())
	fmt.Printf("   Body: %s\n", resp.Body)

	fmt.Println("\n5. Metrics...")
	families, err := registry.Gather()
	if err != nil {
		log.Fatalf("Failed to gather metrics: %v", err)
	}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			if m.GetCounter() != nil {
				fmt.Printf("   %s %v = %.0f\n", f.GetName(), m.GetLabel(), m.GetCounter().GetValue())
			}
		}
	}

	fmt.Println("\nExample completed!")
}
