package merkle

import "crypto/sha256"

const (
	// MaxChunkSize is the largest a chunk (and therefore a Merkle leaf)
	// may be: 256 KiB.
	MaxChunkSize = 256 * 1024

	// MinChunkSize is the smallest a non-final chunk may be. A trailing
	// remainder shorter than this triggers the rebalance below; the
	// protocol rejects suspiciously small tail chunks.
	MinChunkSize = 32 * 1024
)

// Chunk is one contiguous slice of the source data, already hashed.
type Chunk struct {
	DataHash     [32]byte
	MinByteRange int64
	MaxByteRange int64
}

// splitChunks divides data into Chunks of MaxChunkSize, except that the
// final chunk may be shorter. Whenever taking a full MaxChunkSize chunk
// would leave a remainder shorter than MinChunkSize, the current chunk is
// instead cut in half so neither it nor the remainder is tiny.
func splitChunks(data []byte) []Chunk {
	var chunks []Chunk
	rest := data
	var cursor int64

	for int64(len(rest)) >= MaxChunkSize {
		chunkSize := int64(MaxChunkSize)

		nextChunkSize := int64(len(rest)) - chunkSize
		if nextChunkSize > 0 && nextChunkSize < MinChunkSize {
			chunkSize = (int64(len(rest)) + 1) / 2
		}

		chunk := rest[:chunkSize]
		hash := sha256.Sum256(chunk)
		cursor += chunkSize
		chunks = append(chunks, Chunk{
			DataHash:     hash,
			MinByteRange: cursor - chunkSize,
			MaxByteRange: cursor,
		})
		rest = rest[chunkSize:]
	}

	hash := sha256.Sum256(rest)
	chunks = append(chunks, Chunk{
		DataHash:     hash,
		MinByteRange: cursor,
		MaxByteRange: cursor + int64(len(rest)),
	})

	return chunks
}
