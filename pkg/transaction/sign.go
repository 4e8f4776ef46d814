package transaction

import (
	"github.com/arweave-go/uploader/pkg/arerr"
	"github.com/arweave-go/uploader/pkg/deephash"
	"github.com/arweave-go/uploader/pkg/wallet"
)

// Sign computes tx's deep hash, signs it with signer, and sets Signature
// and ID. It mutates tx in place and also returns it for chaining.
func Sign(tx *Transaction, signer wallet.Signer) (*Transaction, error) {
	digest := deephash.Hash(tx.DeepHashTree())

	sig, err := signer.Sign(digest[:])
	if err != nil {
		return nil, &arerr.SigningFailure{Err: err}
	}

	tx.Signature = sig
	tx.ID = IDFromSignature(sig)
	return tx, nil
}
