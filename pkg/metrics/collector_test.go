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

package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keytest "github.com/useme-com/transferwise-go/internal/testutil"
	"github.com/useme-com/transferwise-go/pkg/client"
)

func TestNewCollector_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()

	c, err := NewCollector(reg)
	require.NoError(t, err)
	require.NotNil(t, c)

	c.ObserveAttempt("GET", "initial", 200, 10*time.Millisecond)
	c.ObserveStepUp("GET")
	c.ObserveConnectionError("GET", "initial")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"transferwise_client_attempts_total",
		"transferwise_client_attempt_duration_seconds",
		"transferwise_client_step_up_challenges_total",
		"transferwise_client_connection_errors_total",
	}, names)
}

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestNewCollector_NilRegisterer(t *testing.T) {
	c, err := NewCollector(nil)
	require.NoError(t, err)

	c.ObserveStepUp("POST")
	assert.Equal(t, float64(1), testutil.ToFloat64(c.stepUps.WithLabelValues("POST")))
}

func TestCollector_ObservesStepUpFlow(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set(client.HeaderApprovalResult, client.ApprovalRejected)
			w.Header().Set(client.HeaderApproval, "nonce123")
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	collector, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	path, _ := keytest.RSAKeyFile(t, "")
	c, err := client.New(client.Config{
		APIBaseURL:     server.URL + "/",
		APIToken:       "token",
		PrivateKeyPath: path,
	}, client.WithObserver(collector))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "v1/profiles")
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(collector.attempts.WithLabelValues("GET", "initial", "403")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.attempts.WithLabelValues("GET", "step-up", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.stepUps.WithLabelValues("GET")))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.duration))
	assert.Equal(t, 0, testutil.CollectAndCount(collector.connectionErrors))
}

func TestCollector_ObservesConnectionErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL + "/"
	server.Close()

	collector, err := NewCollector(nil)
	require.NoError(t, err)

	path, _ := keytest.RSAKeyFile(t, "")
	c, err := client.New(client.Config{APIBaseURL: url, APIToken: "token", PrivateKeyPath: path},
		client.WithObserver(collector))
	require.NoError(t, err)

	_, err = c.Get(context.Background(), "v1/profiles")
	require.Error(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(collector.connectionErrors.WithLabelValues("GET", "initial")))
	assert.Equal(t, 0, testutil.CollectAndCount(collector.attempts))
}
