package transaction

import (
	"context"
	"os"
	"strconv"

	"github.com/arweave-go/uploader/internal/arnet"
	"github.com/arweave-go/uploader/internal/mime"
	"github.com/arweave-go/uploader/pkg/arerr"
	"github.com/arweave-go/uploader/pkg/merkle"
	"github.com/arweave-go/uploader/pkg/wallet"
)

// Options overrides the values CreateFromFile would otherwise fetch from
// the network or derive from the signer. A zero Options fetches
// everything: anchor and reward from client, content type by sniffing.
type Options struct {
	LastTx      []byte // overrides the fetched tx_anchor when non-nil
	Reward      string // overrides the fetched price when non-empty
	Tags        []Tag  // appended after the content-type tag
	ContentType string // overrides the sniffed mime type when non-empty
}

// CreateFromFile reads path, builds its Merkle data root, and assembles an
// unsigned Transaction carrying the owner, anchor, reward, content-type
// tag, and chunk metadata. The returned transaction still needs Sign
// before Post will accept it.
func CreateFromFile(ctx context.Context, path string, signer wallet.Signer, client *arnet.Client, opts Options) (*Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &arerr.IOFailure{Op: "read source file", Path: path, Err: err}
	}

	root, err := merkle.GenerateRoot(data)
	if err != nil {
		return nil, err
	}
	proofs, err := root.Proofs()
	if err != nil {
		return nil, err
	}

	lastTx := opts.LastTx
	if lastTx == nil {
		anchor, err := client.TxAnchor(ctx)
		if err != nil {
			return nil, err
		}
		lastTx = []byte(anchor)
	}

	reward := opts.Reward
	if reward == "" {
		price, err := client.Price(ctx, int64(len(data)))
		if err != nil {
			return nil, err
		}
		reward = strconv.FormatInt(price, 10)
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = mime.Sniff(data)
	}

	tags := append([]Tag{NewTag("Content-Type", contentType)}, opts.Tags...)

	tx := &Transaction{
		Format:   Format,
		LastTx:   lastTx,
		Owner:    signer.PublicModulus(),
		Tags:     tags,
		Data:     data,
		DataSize: int64(len(data)),
		DataRoot: root.ID[:],
		Reward:   reward,
		Chunks:   root.Leaves,
		Proofs:   proofs,
	}
	return tx, nil
}
