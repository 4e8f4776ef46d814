// Package arnet is the HTTP client glue between this library and the
// network: the small set of GET/POST calls needed to assemble, sign, post,
// and poll a transaction. It knows nothing about transaction or journal
// shapes — callers pass and receive raw bytes — so it stays a leaf
// dependency the rest of the core can sit on top of without an import
// cycle.
package arnet

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/arweave-go/uploader/pkg/arerr"
)

// DefaultBaseURL is the public network gateway this client talks to when
// no other base URL is configured.
const DefaultBaseURL = "https://arweave.net/"

// Client is a thin wrapper over net/http.Client, following the same shape
// as a typical JSON-RPC client: a base URL, an http.Client, and an
// optional rate limiter bounding outbound request rate (the network
// rate-limits submissions per submitter, per the client's own contract).
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient creates a network client against baseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		http:    &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

// WithHTTPClient overrides the underlying http.Client — used by tests to
// inject a client backed by httptest.Server or a mock RoundTripper.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// WithRateLimit bounds outbound requests to rps per second with the given
// burst, the domain-stack equivalent of the per-submitter throttling the
// network enforces server-side.
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// TxAnchor fetches a recent transaction id to use as last_tx.
func (c *Client) TxAnchor(ctx context.Context) (string, error) {
	status, body, err := c.do(ctx, http.MethodGet, "tx_anchor", nil, "")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &arerr.NetworkFailure{Op: "tx_anchor", Status: status}
	}
	return strings.TrimSpace(string(body)), nil
}

// Price returns the price in winstons to store numBytes.
func (c *Client) Price(ctx context.Context, numBytes int64) (int64, error) {
	path := "price/" + strconv.FormatInt(numBytes, 10)
	status, body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, &arerr.NetworkFailure{Op: "price", Status: status}
	}
	n, parseErr := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if parseErr != nil {
		return 0, &arerr.MalformedResponse{Op: "price", Body: string(body), Err: parseErr}
	}
	return n, nil
}

// Balance returns the wallet balance in winstons for address.
func (c *Client) Balance(ctx context.Context, address string) (int64, error) {
	path := "wallet/" + address + "/balance"
	status, body, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, &arerr.NetworkFailure{Op: "balance", Status: status}
	}
	n, parseErr := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
	if parseErr != nil {
		return 0, &arerr.MalformedResponse{Op: "balance", Body: string(body), Err: parseErr}
	}
	return n, nil
}

// GetTransaction fetches the raw JSON body of a transaction by id. Callers
// unmarshal into transaction.Transaction themselves.
func (c *Client) GetTransaction(ctx context.Context, id string) ([]byte, error) {
	status, body, err := c.do(ctx, http.MethodGet, "tx/"+id, nil, "")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &arerr.NetworkFailure{Op: "get_transaction", Status: status}
	}
	return body, nil
}

// GetStatus fetches the raw tx/{id}/status response: the HTTP status code
// and body. Interpreting the {200 "Pending", 200 JSON, 202, 404, other}
// cases is the journal's job (it owns the status-record state machine).
func (c *Client) GetStatus(ctx context.Context, id string) (int, []byte, error) {
	status, body, err := c.do(ctx, http.MethodGet, "tx/"+id+"/status", nil, "")
	if err != nil {
		return 0, nil, err
	}
	return status, body, nil
}

// PostTransaction posts a pre-serialized transaction body and returns the
// raw HTTP status and body. Interpreting 200-vs-other is the caller's job
// (pkg/transaction.Post).
func (c *Client) PostTransaction(ctx context.Context, body []byte) (int, []byte, error) {
	return c.do(ctx, http.MethodPost, "tx/", body, "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string) (int, []byte, error) {
	if err := c.wait(ctx); err != nil {
		return 0, nil, &arerr.NetworkFailure{Op: path, Err: err}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, &arerr.NetworkFailure{Op: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &arerr.NetworkFailure{Op: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &arerr.NetworkFailure{Op: path, Status: resp.StatusCode, Err: err}
	}

	if c.logger != nil {
		c.logger.Debug("arnet request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
	}

	return resp.StatusCode, respBody, nil
}
