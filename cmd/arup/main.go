// Command arup is a thin wiring-only CLI over the upload library: it
// parses flags, builds a Pipeline, and prints results. It carries no
// business logic beyond argument handling — wallet key-file parsing and
// RSA-PSS signing internals are out of scope for this module (a caller
// integrating the library supplies their own wallet.Signer).
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/arweave-go/uploader/internal/arnet"
	"github.com/arweave-go/uploader/internal/config"
	"github.com/arweave-go/uploader/internal/journal"
	"github.com/arweave-go/uploader/internal/upload"
	"github.com/arweave-go/uploader/pkg/wallet"
)

func main() {
	var (
		baseURL   = flag.String("base-url", config.DefaultBaseURL, "network gateway base URL")
		logDir    = flag.String("log-dir", ".arup", "directory holding per-path status records")
		buffer    = flag.Int("buffer", config.DefaultBuffer, "max concurrent uploads/status checks")
		paths     = flag.String("paths", "", "comma-separated list of file paths")
		mode      = flag.String("mode", "upload", "upload | status | summary | retry")
		demoMode  = flag.Bool("demo-signer", false, "sign with an in-memory mock signer instead of a real wallet (testing only, produces no valid on-chain signature)")
		rateLimit = flag.Float64("rate-limit-rps", 0, "outbound request rate limit, 0 disables")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Config{
		BaseURL:        *baseURL,
		Buffer:         *buffer,
		LogDir:         *logDir,
		RateLimitRPS:   *rateLimit,
		RateLimitBurst: *buffer,
	}.WithDefaults()

	client := arnet.NewClient(cfg.BaseURL, logger).WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})
	if cfg.RateLimitRPS > 0 {
		client = client.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	var fileList []string
	if *paths != "" {
		fileList = strings.Split(*paths, ",")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "upload":
		runUpload(ctx, client, cfg, fileList, *demoMode, logger)
	case "status":
		runStatus(ctx, client, cfg, fileList, logger)
	case "summary":
		runSummary(cfg, fileList)
	case "retry":
		runRetrySelection(cfg, fileList)
	default:
		fmt.Fprintf(os.Stderr, "unknown -mode %q\n", *mode)
		os.Exit(1)
	}
}

func loadSigner(demoMode bool) (wallet.Signer, error) {
	if !demoMode {
		return nil, fmt.Errorf("no wallet signer configured: wallet key-file parsing is not implemented by this command, pass -demo-signer to exercise the pipeline without a real key, or integrate pkg/transaction directly with your own wallet.Signer")
	}
	return wallet.NewMockSigner(512), nil
}

func runUpload(ctx context.Context, client *arnet.Client, cfg config.Config, paths []string, demoMode bool, logger *zap.Logger) {
	signer, err := loadSigner(demoMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pipeline := upload.NewPipeline(client, signer, logger)
	out := pipeline.UploadStream(ctx, paths, upload.Options{
		Buffer: cfg.Buffer,
		LogDir: cfg.LogDir,
		LastTx: cfg.LastTx,
		Reward: cfg.Reward,
	})

	failures := 0
	for res := range out {
		if res.Err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			continue
		}
		fmt.Printf("%s: %s (%s)\n", res.Path, res.Value.ID, res.Value.Status)
	}
	if failures > 0 {
		os.Exit(1)
	}
}

func runStatus(ctx context.Context, client *arnet.Client, cfg config.Config, paths []string, logger *zap.Logger) {
	pipeline := upload.NewPipeline(client, nil, logger)
	out := pipeline.UpdateStatusesStream(ctx, paths, cfg.LogDir, cfg.Buffer)

	for res := range out {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			continue
		}
		fmt.Printf("%s: %s\n", res.Path, res.Value.Status)
	}
}

func runSummary(cfg config.Config, paths []string) {
	statuses, err := journal.ReadAll(cfg.LogDir, paths)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(journal.Summary(statuses))
}

func runRetrySelection(cfg config.Config, paths []string) {
	statuses, err := journal.ReadAll(cfg.LogDir, paths)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, path := range journal.SelectForRetry(statuses) {
		fmt.Println(path)
	}
}
