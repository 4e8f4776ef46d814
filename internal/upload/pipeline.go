// Package upload drives a bounded-concurrency pipeline over a list of
// source paths: assemble, sign, post, and persist a status record for
// each, or poll the network for a previously submitted path's current
// confirmation state. Concurrency is bounded the way the teacher bounds
// jobCh, generalized to a weighted semaphore instead of a fixed channel
// so the same pipeline serves both the streaming and join-all entry
// points with one knob.
package upload

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/arweave-go/uploader/internal/arnet"
	"github.com/arweave-go/uploader/internal/journal"
	"github.com/arweave-go/uploader/internal/metrics"
	"github.com/arweave-go/uploader/pkg/transaction"
	"github.com/arweave-go/uploader/pkg/wallet"
)

// Result carries one path's outcome through a streaming channel: either
// a populated Value or a non-nil Err, never both.
type Result[T any] struct {
	Path  string
	Value T
	Err   error
}

// Options configures a single pipeline run.
type Options struct {
	// Buffer bounds the number of paths processed concurrently. <= 0 means 1.
	Buffer int

	// LogDir is where per-path status records are written. Empty means
	// upload without persisting a status record at all — a legitimate,
	// documented mode, not a misconfiguration.
	LogDir string

	// LastTx and Reward, when non-empty, are passed through to every
	// CreateFromFile call, skipping the per-upload anchor/price fetch.
	LastTx []byte
	Reward string
}

func (o Options) buffer() int64 {
	if o.Buffer <= 0 {
		return 1
	}
	return int64(o.Buffer)
}

// Pipeline drives uploads and status reconciliation against one network
// client and signing capability.
type Pipeline struct {
	client *arnet.Client
	signer wallet.Signer
	logger *zap.Logger
}

// NewPipeline creates a Pipeline bound to client and signer.
func NewPipeline(client *arnet.Client, signer wallet.Signer, logger *zap.Logger) *Pipeline {
	return &Pipeline{client: client, signer: signer, logger: logger}
}

// UploadStream runs CreateFromFile -> Sign -> Post -> journal.Write for
// every path in paths, at most opts.Buffer concurrently, and streams a
// Result on the returned channel as soon as each completes — completion
// order, not input order. The channel is closed once every path has been
// processed or ctx is done.
func (p *Pipeline) UploadStream(ctx context.Context, paths []string, opts Options) <-chan Result[*journal.Status] {
	out := make(chan Result[*journal.Status])
	sem := semaphore.NewWeighted(opts.buffer())

	go func() {
		defer close(out)

		var wg errgroup.Group
		for _, path := range paths {
			path := path
			if err := sem.Acquire(ctx, 1); err != nil {
				out <- Result[*journal.Status]{Path: path, Err: err}
				continue
			}
			wg.Go(func() error {
				defer sem.Release(1)
				status, err := p.uploadOne(ctx, path, opts)
				out <- Result[*journal.Status]{Path: path, Value: status, Err: err}
				return nil
			})
		}
		wg.Wait()
	}()

	return out
}

// UploadFromPaths runs the same work as UploadStream but joins on every
// path before returning, preserving the input order of paths in the
// returned slice (index i of the result corresponds to paths[i]).
func (p *Pipeline) UploadFromPaths(ctx context.Context, paths []string, opts Options) ([]*journal.Status, error) {
	results := make([]*journal.Status, len(paths))
	sem := semaphore.NewWeighted(opts.buffer())
	g, gctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		i, path := i, path
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		g.Go(func() error {
			defer sem.Release(1)
			status, err := p.uploadOne(gctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = status
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) uploadOne(ctx context.Context, path string, opts Options) (*journal.Status, error) {
	correlationID := uuid.New().String()
	logger := p.logger
	if logger != nil {
		logger = logger.With(zap.String("correlation_id", correlationID), zap.String("path", path))
	}

	metrics.UploadsInFlight.Inc()
	defer metrics.UploadsInFlight.Dec()

	tx, err := transaction.CreateFromFile(ctx, path, p.signer, p.client, transaction.Options{
		LastTx: opts.LastTx,
		Reward: opts.Reward,
	})
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("assemble_failed").Inc()
		if logger != nil {
			logger.Error("assemble failed", zap.Error(err))
		}
		return nil, err
	}

	if _, err := transaction.Sign(tx, p.signer); err != nil {
		metrics.UploadsTotal.WithLabelValues("sign_failed").Inc()
		if logger != nil {
			logger.Error("sign failed", zap.Error(err))
		}
		return nil, err
	}

	postStart := time.Now()
	status, err := transaction.Post(ctx, tx, p.client)
	metrics.PostDuration.Observe(time.Since(postStart).Seconds())
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("post_failed").Inc()
		if logger != nil {
			logger.Error("post failed", zap.Error(err))
		}
		return nil, err
	}

	status.FilePath = path
	if opts.LogDir != "" {
		if err := journal.Write(opts.LogDir, *status); err != nil {
			metrics.UploadsTotal.WithLabelValues("journal_write_failed").Inc()
			if logger != nil {
				logger.Error("journal write failed", zap.Error(err))
			}
			return nil, err
		}
	}

	metrics.UploadsTotal.WithLabelValues("submitted").Inc()
	metrics.BytesUploaded.Add(float64(tx.DataSize))
	if logger != nil {
		logger.Info("uploaded", zap.String("id", status.ID), zap.Int64("bytes", tx.DataSize))
	}
	return status, nil
}

// UpdateStatusesStream polls journal.Update for every path in paths, at
// most buffer concurrently, streaming a Result as each resolves.
func (p *Pipeline) UpdateStatusesStream(ctx context.Context, paths []string, logDir string, buffer int) <-chan Result[*journal.Status] {
	out := make(chan Result[*journal.Status])
	if buffer <= 0 {
		buffer = 1
	}
	sem := semaphore.NewWeighted(int64(buffer))

	go func() {
		defer close(out)

		var wg errgroup.Group
		for _, path := range paths {
			path := path
			if err := sem.Acquire(ctx, 1); err != nil {
				out <- Result[*journal.Status]{Path: path, Err: err}
				continue
			}
			wg.Go(func() error {
				defer sem.Release(1)
				status, err := journal.Update(ctx, logDir, path, p.client)
				if err != nil {
					metrics.StatusChecksTotal.WithLabelValues("error").Inc()
					out <- Result[*journal.Status]{Path: path, Err: err}
					return nil
				}
				metrics.StatusChecksTotal.WithLabelValues(string(status.Status)).Inc()
				if status.Status == journal.Confirmed {
					metrics.ConfirmedTotal.Inc()
				}
				out <- Result[*journal.Status]{Path: path, Value: &status}
				return nil
			})
		}
		wg.Wait()
	}()

	return out
}
