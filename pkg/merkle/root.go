package merkle

import "github.com/arweave-go/uploader/pkg/arerr"

// Leaf is the public view of a chunk's position in the tree: the pieces a
// caller needs to re-derive or verify a leaf without walking node
// internals.
type Leaf struct {
	DataHash     [32]byte
	MinByteRange int64
	MaxByteRange int64
	ID           [32]byte
}

// Root is the result of GenerateRoot: the 32-byte data root id plus enough
// of the tree to resolve a Proof per leaf.
type Root struct {
	ID     [32]byte
	Leaves []Leaf

	root      *node
	leafNodes []*node
}

// GenerateRoot splits data into chunks, builds the layered hash tree, and
// returns the root together with leaf metadata. It is deterministic: equal
// inputs always produce an equal Root.ID.
func GenerateRoot(data []byte) (*Root, error) {
	chunks := splitChunks(data)

	leafNodes := make([]*node, len(chunks))
	leaves := make([]Leaf, len(chunks))
	for i, c := range chunks {
		n := newLeafNode(c, i)
		leafNodes[i] = n
		leaves[i] = Leaf{
			DataHash:     c.DataHash,
			MinByteRange: c.MinByteRange,
			MaxByteRange: c.MaxByteRange,
			ID:           n.id,
		}
	}

	root := buildLayers(leafNodes)
	if len(root.id) != 32 {
		return nil, &arerr.MerkleInvariantViolated{Reason: "root id is not 32 bytes"}
	}

	return &Root{
		ID:        root.id,
		Leaves:    leaves,
		root:      root,
		leafNodes: leafNodes,
	}, nil
}

// Proofs resolves one Proof per leaf, in leaf order, by a recursive
// descent from the root. The count always equals len(Leaves); a mismatch
// is a bug in the tree construction, not a caller error, and is reported
// as MerkleInvariantViolated.
func (r *Root) Proofs() ([]Proof, error) {
	proofs := make([]Proof, len(r.leafNodes))
	resolveProofs(r.root, nil, proofs)

	for i, p := range proofs {
		if p.ProofBytes == nil {
			return nil, &arerr.MerkleInvariantViolated{Reason: "leaf left unresolved during proof descent"}
		}
		_ = i
	}
	return proofs, nil
}
