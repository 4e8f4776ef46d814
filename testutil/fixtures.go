package testutil

import (
	"encoding/hex"

	"github.com/arweave-go/uploader/internal/journal"
	"github.com/arweave-go/uploader/pkg/transaction"
	"github.com/arweave-go/uploader/pkg/wallet"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// SampleTransaction returns a minimal, unsigned transaction suitable for
// marshal/deep-hash tests.
func SampleTransaction() *transaction.Transaction {
	return &transaction.Transaction{
		Format:   transaction.Format,
		LastTx:   []byte("LCwsLCwsLA"),
		Owner:    mustHex("01020304"),
		Tags:     []transaction.Tag{transaction.NewTag("Content-Type", "application/octet-stream")},
		DataSize: 4,
		DataRoot: mustHex("0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"),
		Reward:   "1000000",
	}
}

// SampleSigner returns a MockSigner with a fixed modulus size typical of a
// 4096-bit RSA key (512 bytes).
func SampleSigner() *wallet.MockSigner {
	return wallet.NewMockSigner(512)
}

// SampleStatus returns a Submitted status record for filePath.
func SampleStatus(filePath string) journal.Status {
	return journal.Status{
		ID:       "sample-id",
		Status:   journal.Submitted,
		FilePath: filePath,
		Reward:   1000000,
	}
}
