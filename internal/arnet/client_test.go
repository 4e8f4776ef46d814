package arnet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/arweave-go/uploader/pkg/arerr"
)

func TestTxAnchor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tx_anchor" {
			t.Errorf("path = %s, want /tx_anchor", r.URL.Path)
		}
		w.Write([]byte("LCwsLCwsLA"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	anchor, err := c.TxAnchor(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if anchor != "LCwsLCwsLA" {
		t.Errorf("anchor = %q, want LCwsLCwsLA", anchor)
	}
}

func TestPriceParsesInteger(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/price/") {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte("123456"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	price, err := c.Price(context.Background(), 1024)
	if err != nil {
		t.Fatal(err)
	}
	if price != 123456 {
		t.Errorf("price = %d, want 123456", price)
	}
}

func TestPostTransactionReturnsRawStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s", ct)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	status, _, err := c.PostTransaction(context.Background(), []byte(`{"id":"abc"}`))
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
}

func TestGetStatusPassesThroughHTTPCode(t *testing.T) {
	for _, code := range []int{200, 202, 404, 500} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		c := NewClient(srv.URL, nil)
		status, _, err := c.GetStatus(context.Background(), "some-id")
		srv.Close()
		if err != nil {
			t.Fatalf("code %d: %v", code, err)
		}
		if status != code {
			t.Errorf("status = %d, want %d", status, code)
		}
	}
}

func TestNonOKStatusIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.TxAnchor(context.Background())
	var netErr *arerr.NetworkFailure
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want *arerr.NetworkFailure on 500 response", err)
	}
	if netErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", netErr.Status)
	}
}

func TestRateLimitedClientStillServesRequests(t *testing.T) {
	var count atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.Write([]byte("0"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil).WithRateLimit(1000, 1)
	for i := 0; i < 3; i++ {
		if _, err := c.Price(context.Background(), 1); err != nil {
			t.Fatal(err)
		}
	}
	if count.Load() != 3 {
		t.Errorf("requests observed = %d, want 3", count.Load())
	}
}
