// Package transaction assembles, signs, and posts network transactions:
// the format/tags/data/root/anchor/reward/owner record whose deep hash is
// the signature input.
package transaction

import (
	"crypto/sha256"
	"encoding/json"

	"github.com/arweave-go/uploader/pkg/b64"
	"github.com/arweave-go/uploader/pkg/deephash"
	"github.com/arweave-go/uploader/pkg/merkle"
)

// Format is the only transaction format this client produces.
const Format = 2

// Tag is a (name, value) pair. NewTag builds one from UTF-8 strings for
// convenience; the wire form is always the base64url of the raw bytes.
type Tag struct {
	Name  []byte
	Value []byte
}

// NewTag constructs a Tag from UTF-8 strings.
func NewTag(name, value string) Tag {
	return Tag{Name: []byte(name), Value: []byte(value)}
}

// Transaction is the canonical record described in the data model: format,
// tags, data, data root, anchor, reward, and owner, plus the signature and
// id once signed.
type Transaction struct {
	Format    int
	ID        []byte // 32 bytes, SHA-256(signature); empty until signed
	LastTx    []byte // anchor
	Owner     []byte // signer's RSA public modulus, big-endian
	Tags      []Tag
	Target    []byte
	Quantity  string // decimal ascii winstons; "" means zero
	Data      []byte
	DataSize  int64
	DataRoot  []byte // 32 bytes
	Reward    string // decimal ascii winstons
	Signature []byte

	// Populated by the Merkle engine; retained for future chunked-upload
	// APIs but not part of the wire transaction body.
	Chunks []merkle.Leaf
	Proofs []merkle.Proof
}

// Signed reports whether the transaction carries a non-empty id.
func (t *Transaction) Signed() bool {
	return len(t.ID) > 0
}

// touch clears signature and id. Every setter that changes a
// deep-hash-covered field (owner, last_tx, data_root, reward, data_size,
// tags, target, quantity) calls this, since changing any of them
// invalidates a previously computed signature.
func (t *Transaction) touch() {
	t.Signature = nil
	t.ID = nil
}

// SetTags replaces the tag list and invalidates any existing signature.
func (t *Transaction) SetTags(tags []Tag) {
	t.Tags = tags
	t.touch()
}

// SetTarget replaces the recipient target and invalidates any existing
// signature.
func (t *Transaction) SetTarget(target []byte) {
	t.Target = target
	t.touch()
}

// SetQuantity replaces the transfer quantity and invalidates any existing
// signature.
func (t *Transaction) SetQuantity(quantity string) {
	t.Quantity = quantity
	t.touch()
}

// SetReward replaces the reward and invalidates any existing signature.
func (t *Transaction) SetReward(reward string) {
	t.Reward = reward
	t.touch()
}

// SetLastTx replaces the anchor and invalidates any existing signature.
func (t *Transaction) SetLastTx(lastTx []byte) {
	t.LastTx = lastTx
	t.touch()
}

// DeepHashTree builds the exact heterogeneous tree the network signs:
//
//	List[ Blob(format), Blob(owner), Blob(target), Blob(quantity),
//	      Blob(reward), Blob(last_tx),
//	      List[ for each tag: List[ Blob(name), Blob(value) ] ],
//	      Blob(data_size), Blob(data_root) ]
func (t *Transaction) DeepHashTree() deephash.Value {
	tagList := make(deephash.List, len(t.Tags))
	for i, tag := range t.Tags {
		tagList[i] = deephash.List{deephash.Blob(tag.Name), deephash.Blob(tag.Value)}
	}

	return deephash.List{
		deephash.Blob(formatAscii(t.Format)),
		deephash.Blob(t.Owner),
		deephash.Blob(t.Target),
		deephash.Blob(quantityAscii(t.Quantity)),
		deephash.Blob(rewardAscii(t.Reward)),
		deephash.Blob(t.LastTx),
		tagList,
		deephash.Blob(dataSizeAscii(t.DataSize)),
		deephash.Blob(t.DataRoot),
	}
}

// IDFromSignature computes the transaction id: SHA-256(signature).
func IDFromSignature(signature []byte) []byte {
	sum := sha256.Sum256(signature)
	return sum[:]
}

func formatAscii(format int) []byte {
	return []byte(b64.DecimalString(itoa(int64(format))))
}

func quantityAscii(quantity string) []byte {
	if quantity == "" {
		return []byte("0")
	}
	return []byte(quantity)
}

func rewardAscii(reward string) []byte {
	if reward == "" {
		return []byte("0")
	}
	return []byte(reward)
}

func dataSizeAscii(size int64) []byte {
	return []byte(itoa(size))
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// wireTag is the on-wire {name, value} tag representation.
type wireTag struct {
	Name  b64.Bytes `json:"name"`
	Value b64.Bytes `json:"value"`
}

// wireTransaction is the exact JSON shape described in the external
// interfaces section: every binary field is base64url without padding,
// quantities are decimal strings.
type wireTransaction struct {
	Format    int               `json:"format"`
	ID        b64.Bytes         `json:"id"`
	LastTx    b64.Bytes         `json:"last_tx"`
	Owner     b64.Bytes         `json:"owner"`
	Tags      []wireTag         `json:"tags"`
	Target    b64.Bytes         `json:"target"`
	Quantity  b64.DecimalString `json:"quantity"`
	Data      b64.Bytes         `json:"data"`
	DataSize  b64.DecimalString `json:"data_size"`
	DataRoot  b64.Bytes         `json:"data_root"`
	Reward    b64.DecimalString `json:"reward"`
	Signature b64.Bytes         `json:"signature"`
}

// MarshalJSON renders the transaction in the exact wire shape the network
// expects for POST tx/.
func (t *Transaction) MarshalJSON() ([]byte, error) {
	tags := make([]wireTag, len(t.Tags))
	for i, tag := range t.Tags {
		tags[i] = wireTag{Name: b64.Bytes(tag.Name), Value: b64.Bytes(tag.Value)}
	}
	w := wireTransaction{
		Format:    t.Format,
		ID:        b64.Bytes(t.ID),
		LastTx:    b64.Bytes(t.LastTx),
		Owner:     b64.Bytes(t.Owner),
		Tags:      tags,
		Target:    b64.Bytes(t.Target),
		Quantity:  b64.DecimalString(t.Quantity),
		Data:      b64.Bytes(t.Data),
		DataSize:  b64.DecimalString(itoa(t.DataSize)),
		DataRoot:  b64.Bytes(t.DataRoot),
		Reward:    b64.DecimalString(t.Reward),
		Signature: b64.Bytes(t.Signature),
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses a transaction in the wire shape, e.g. from
// GET tx/{id}.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w wireTransaction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	tags := make([]Tag, len(w.Tags))
	for i, wt := range w.Tags {
		tags[i] = Tag{Name: []byte(wt.Name), Value: []byte(wt.Value)}
	}

	t.Format = w.Format
	t.ID = []byte(w.ID)
	t.LastTx = []byte(w.LastTx)
	t.Owner = []byte(w.Owner)
	t.Tags = tags
	t.Target = []byte(w.Target)
	t.Quantity = string(w.Quantity)
	t.Data = []byte(w.Data)
	t.DataRoot = []byte(w.DataRoot)
	t.Reward = string(w.Reward)
	t.Signature = []byte(w.Signature)

	size, err := parseDecimal(string(w.DataSize))
	if err != nil {
		return err
	}
	t.DataSize = size

	return nil
}

func parseDecimal(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	var n int64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, &strconvError{s}
		}
		n = n*10 + int64(c-'0')
	}
	return n, nil
}

type strconvError struct{ s string }

func (e *strconvError) Error() string { return "invalid decimal integer: " + e.s }
