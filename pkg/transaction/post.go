package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/arweave-go/uploader/internal/arnet"
	"github.com/arweave-go/uploader/internal/journal"
	"github.com/arweave-go/uploader/pkg/arerr"
	"github.com/arweave-go/uploader/pkg/b64"
)

// Post submits tx to client and returns the resulting status record. tx
// must be signed: an empty ID is rejected before any HTTP call is made.
// The returned status has no FilePath; callers that persist it through
// internal/journal must set one first.
func Post(ctx context.Context, tx *Transaction, client *arnet.Client) (*journal.Status, error) {
	if !tx.Signed() {
		return nil, &arerr.UnsignedTransaction{}
	}

	body, err := json.Marshal(tx)
	if err != nil {
		return nil, &arerr.MalformedResponse{Op: "marshal transaction", Err: err}
	}

	code, respBody, err := client.PostTransaction(ctx, body)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, &arerr.PostFailed{Code: code, Body: string(respBody)}
	}

	now := time.Now().UTC()
	reward, err := parseDecimal(tx.Reward)
	if err != nil {
		reward = 0
	}
	return &journal.Status{
		ID:           b64.Encode(tx.ID),
		Status:       journal.Submitted,
		CreatedAt:    now,
		LastModified: now,
		Reward:       reward,
	}, nil
}
