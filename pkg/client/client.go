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

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	transferwise "github.com/useme-com/transferwise-go"
	"github.com/useme-com/transferwise-go/pkg/apierror"
	"github.com/useme-com/transferwise-go/pkg/keys"
	"github.com/useme-com/transferwise-go/pkg/signer"
)

// Step-up approval headers
const (
	HeaderApproval       = "x-2fa-approval"
	HeaderApprovalResult = "x-2fa-approval-result"
	HeaderSignature      = "X-Signature"

	ApprovalRejected = "REJECTED"
	ApprovalApproved = "APPROVED"
)

// Attempt labels the two calls a logical request may issue
type Attempt string

const (
	AttemptInitial Attempt = "initial"
	AttemptStepUp  Attempt = "step-up"
)

// Config holds the construction parameters shared by every resource client
type Config struct {
	APIBaseURL           string
	APIToken             string
	PrivateKeyPath       string
	PrivateKeyPassphrase string
}

// Credentials are the resolved, immutable secrets of one Client
type Credentials struct {
	BaseURL    *url.URL
	APIToken   string
	PrivateKey *keys.SigningKey
}

// ResolveCredentials parses the base URL and loads the private key
func ResolveCredentials(cfg Config) (*Credentials, error) {
	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindValidation, "parse api base url", err)
	}
	if !base.IsAbs() {
		return nil, apierror.New(apierror.KindValidation, "parse api base url",
			fmt.Sprintf("%q is not an absolute URL", cfg.APIBaseURL))
	}

	key, err := keys.Load(cfg.PrivateKeyPath, cfg.PrivateKeyPassphrase)
	if err != nil {
		return nil, err
	}

	return &Credentials{
		BaseURL:    base,
		APIToken:   cfg.APIToken,
		PrivateKey: key,
	}, nil
}

// Client issues authenticated calls against the TransferWise API and answers
// step-up approval challenges transparently. It is safe for concurrent use.
type Client struct {
	creds      *Credentials
	signer     signer.ApprovalSigner
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
	observer   Observer
	userAgent  string
}

// New resolves cfg and creates a Client. A missing or unreadable private key
// fails here with apierror.KindKeyLoad, never on a later request.
func New(cfg Config, opts ...Option) (*Client, error) {
	creds, err := ResolveCredentials(cfg)
	if err != nil {
		return nil, err
	}

	return NewWithCredentials(creds, opts...)
}

// NewWithCredentials creates a Client from already resolved credentials
func NewWithCredentials(creds *Credentials, opts ...Option) (*Client, error) {
	if creds == nil || creds.BaseURL == nil {
		return nil, apierror.New(apierror.KindValidation, "new client", "credentials must carry a base URL")
	}
	if creds.PrivateKey == nil {
		return nil, apierror.New(apierror.KindKeyLoad, "new client", "credentials must carry a private key")
	}

	c := &Client{
		creds:      creds,
		signer:     signer.NewDefaultSigner(),
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
		observer:   noopObserver{},
		userAgent:  transferwise.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Request resolves path against the base URL, sends payload as JSON (when
// non-nil) and returns the final response.
//
// A non-success response carrying x-2fa-approval-result: REJECTED is answered
// once: the x-2fa-approval token is signed and the call is replayed with the
// token and signature attached. The replay's response is returned whatever its
// status. Any other non-success response is returned as is, without an error.
func (c *Client) Request(ctx context.Context, method, path string, payload any) (*Response, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	body, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	first, err := c.send(ctx, method, target, body, c.defaultHeaders(), AttemptInitial)
	if err != nil {
		return nil, err
	}

	if isSuccess(first.resp.StatusCode) || first.resp.Header.Get(HeaderApprovalResult) != ApprovalRejected {
		return c.decode(first)
	}

	// An absent token is signed and sent as an empty value.
	token := first.resp.Header.Get(HeaderApproval)
	signature, err := c.signer.Sign(c.creds.PrivateKey, token)
	if err != nil {
		return nil, err
	}

	c.observer.ObserveStepUp(method)
	c.logger.Debug("answering step-up approval challenge",
		zap.String("method", method),
		zap.String("url", target.String()),
		zap.Int("status", first.resp.StatusCode),
	)

	headers := c.defaultHeaders()
	headers.Set(HeaderApproval, token)
	headers.Set(HeaderSignature, signature)

	second, err := c.send(ctx, method, target, body, headers, AttemptStepUp)
	if err != nil {
		return nil, err
	}

	return c.decode(second)
}

// Get issues a GET request
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON payload
func (c *Client) Post(ctx context.Context, path string, payload any) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, payload)
}

// Put issues a PUT request with an optional JSON payload
func (c *Client) Put(ctx context.Context, path string, payload any) (*Response, error) {
	return c.Request(ctx, http.MethodPut, path, payload)
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.creds.BaseURL.String()
}

// SigningKey returns the key used to answer step-up challenges
func (c *Client) SigningKey() *keys.SigningKey {
	return c.creds.PrivateKey
}

// rawResponse is a response whose body has been read but not yet decoded
type rawResponse struct {
	resp *http.Response
	body []byte
}

func (c *Client) send(ctx context.Context, method string, target *url.URL, body []byte, headers http.Header, attempt Attempt) (*rawResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindValidation, "build request", err)
	}
	req.Header = headers

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.connectionError(req, nil, attempt, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.connectionError(req, resp, attempt, err)
	}

	elapsed := time.Since(start)
	c.observer.ObserveAttempt(method, string(attempt), resp.StatusCode, elapsed)
	c.logger.Debug("transferwise response",
		zap.String("method", method),
		zap.String("url", target.String()),
		zap.String("attempt", string(attempt)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed),
	)

	return &rawResponse{resp: resp, body: respBody}, nil
}

func (c *Client) connectionError(req *http.Request, resp *http.Response, attempt Attempt, err error) error {
	c.observer.ObserveConnectionError(req.Method, string(attempt))
	c.logger.Error("transferwise connection error",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("attempt", string(attempt)),
		zap.Error(err),
	)

	return &apierror.Error{
		Kind:     apierror.KindConnection,
		Op:       fmt.Sprintf("%s %s", req.Method, req.URL.Path),
		Request:  req,
		Response: resp,
		Err:      err,
	}
}

func (c *Client) decode(r *rawResponse) (*Response, error) {
	out := &Response{
		StatusCode: r.resp.StatusCode,
		Header:     r.resp.Header,
	}

	trimmed := bytes.TrimSpace(r.body)
	if len(trimmed) == 0 {
		return out, nil
	}
	if !json.Valid(trimmed) {
		return nil, &apierror.Error{
			Kind:     apierror.KindDecode,
			Op:       "decode response",
			Message:  fmt.Sprintf("status %d: body is not valid JSON", r.resp.StatusCode),
			Request:  r.resp.Request,
			Response: r.resp,
		}
	}

	out.Body = json.RawMessage(trimmed)
	return out, nil
}

// resolve joins path onto the base URL with RFC 3986 reference resolution,
// so an absolute path replaces the base entirely.
func (c *Client) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindValidation, "parse request path", err)
	}
	return c.creds.BaseURL.ResolveReference(ref), nil
}

func (c *Client) defaultHeaders() http.Header {
	h := make(http.Header, 5)
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Bearer "+c.creds.APIToken)
	h.Set("User-Agent", c.userAgent)
	return h
}

func encodePayload(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindValidation, "encode payload", err)
	}
	return body, nil
}
