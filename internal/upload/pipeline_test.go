package upload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arweave-go/uploader/internal/arnet"
	"github.com/arweave-go/uploader/internal/journal"
	"github.com/arweave-go/uploader/pkg/wallet"
)

func makePaths(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, n)
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, "file"+string(rune('a'+i)))
		if err := os.WriteFile(path, []byte{byte(i), byte(i + 1)}, 0o644); err != nil {
			t.Fatal(err)
		}
		paths[i] = path
	}
	return paths
}

func TestUploadStreamBoundsConcurrentPosts(t *testing.T) {
	const buffer = 2
	var inFlight, maxInFlight atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tx/" {
			w.Write([]byte("0"))
			return
		}
		n := inFlight.Add(1)
		for {
			cur := maxInFlight.Load()
			if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := arnet.NewClient(srv.URL, nil)
	signer := wallet.NewMockSigner(64)
	pipeline := NewPipeline(client, signer, nil)

	paths := makePaths(t, 6)
	logDir := t.TempDir()

	out := pipeline.UploadStream(context.Background(), paths, Options{
		Buffer: buffer,
		LogDir: logDir,
		LastTx: []byte("anchor"),
		Reward: "1",
	})

	count := 0
	for res := range out {
		if res.Err != nil {
			t.Fatalf("path %s: %v", res.Path, res.Err)
		}
		count++
	}
	if count != len(paths) {
		t.Fatalf("got %d results, want %d", count, len(paths))
	}
	if got := maxInFlight.Load(); got > buffer {
		t.Errorf("observed %d concurrent posts, want <= %d", got, buffer)
	}
}

func TestUploadFromPathsPreservesInputOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := arnet.NewClient(srv.URL, nil)
	signer := wallet.NewMockSigner(64)
	pipeline := NewPipeline(client, signer, nil)

	paths := makePaths(t, 5)
	statuses, err := pipeline.UploadFromPaths(context.Background(), paths, Options{
		Buffer: 3,
		LogDir: t.TempDir(),
		LastTx: []byte("anchor"),
		Reward: "1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(statuses) != len(paths) {
		t.Fatalf("len(statuses) = %d, want %d", len(statuses), len(paths))
	}
	for i, s := range statuses {
		if s == nil {
			t.Fatalf("statuses[%d] is nil", i)
		}
		if s.FilePath != paths[i] {
			t.Errorf("statuses[%d].FilePath = %q, want %q (input order)", i, s.FilePath, paths[i])
		}
	}
}

func TestUploadStreamSkipsJournalWriteWhenLogDirEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := arnet.NewClient(srv.URL, nil)
	signer := wallet.NewMockSigner(64)
	pipeline := NewPipeline(client, signer, nil)

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	scratch := t.TempDir()
	if err := os.Chdir(scratch); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	paths := makePaths(t, 2)
	out := pipeline.UploadStream(context.Background(), paths, Options{
		Buffer: 2,
		LogDir: "", // no journal persistence requested
		LastTx: []byte("anchor"),
		Reward: "1",
	})

	for res := range out {
		if res.Err != nil {
			t.Fatalf("path %s: %v", res.Path, res.Err)
		}
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files written with LogDir unset, found %v", entries)
	}
}

func TestUploadFromPathsStopsOnFirstError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := arnet.NewClient(srv.URL, nil)
	signer := wallet.NewMockSigner(64)
	pipeline := NewPipeline(client, signer, nil)

	paths := makePaths(t, 3)
	_, err := pipeline.UploadFromPaths(context.Background(), paths, Options{
		Buffer: 3,
		LogDir: t.TempDir(),
		LastTx: []byte("anchor"),
		Reward: "1",
	})
	if err == nil {
		t.Fatal("expected an error when every post is rejected")
	}
}

func TestUpdateStatusesStreamReportsPerPathOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := arnet.NewClient(srv.URL, nil)
	pipeline := NewPipeline(client, wallet.NewMockSigner(64), nil)

	logDir := t.TempDir()
	paths := []string{"/data/a", "/data/b"}
	for _, p := range paths {
		if err := journal.Write(logDir, journal.Status{ID: "tx-" + p, FilePath: p, Status: journal.Submitted}); err != nil {
			t.Fatal(err)
		}
	}

	out := pipeline.UpdateStatusesStream(context.Background(), paths, logDir, 2)
	seen := map[string]bool{}
	for res := range out {
		if res.Err != nil {
			t.Fatalf("path %s: %v", res.Path, res.Err)
		}
		if res.Value.Status != journal.Pending {
			t.Errorf("path %s: status = %s, want Pending", res.Path, res.Value.Status)
		}
		seen[res.Path] = true
	}
	if len(seen) != len(paths) {
		t.Errorf("saw %d distinct paths, want %d", len(seen), len(paths))
	}
}
