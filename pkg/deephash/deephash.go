// Package deephash implements the network's canonical recursive,
// length-prefixed SHA-384 hash over a heterogeneous byte tree. It is the
// sole input to the transaction signature (pkg/transaction).
package deephash

import (
	"crypto/sha512"
	"strconv"
)

// Value is a node in the deep-hash input tree: either an opaque byte blob
// or an ordered list of child values. There is no inheritance — callers
// build a Value tree with the constructors below and Hash walks it with a
// type switch, the same shape the teacher uses for its tagged Merkle node
// (Leaf/Branch).
type Value interface {
	isValue()
}

// Blob is a leaf byte string.
type Blob []byte

func (Blob) isValue() {}

// List is an ordered sequence of child values.
type List []Value

func (List) isValue() {}

// Hash computes the 48-byte (SHA-384) deep hash of v.
//
// For a Blob b: acc = SHA384("blob" || ascii_decimal(len(b))); result =
// SHA384(acc || SHA384(b)).
//
// For a List of n items: acc = SHA384("list" || ascii_decimal(n)); for
// each child c in order, acc = SHA384(acc || Hash(c)); result = acc.
func Hash(v Value) [48]byte {
	switch t := v.(type) {
	case Blob:
		return hashBlob(t)
	case List:
		return hashList(t)
	default:
		panic("deephash: unknown Value type")
	}
}

func hashBlob(b Blob) [48]byte {
	tag := append([]byte("blob"), []byte(strconv.Itoa(len(b)))...)
	acc := sha512.Sum384(tag)
	bodyHash := sha512.Sum384(b)
	return sha512.Sum384(append(acc[:], bodyHash[:]...))
}

func hashList(items List) [48]byte {
	tag := append([]byte("list"), []byte(strconv.Itoa(len(items)))...)
	acc := sha512.Sum384(tag)
	for _, item := range items {
		childHash := Hash(item)
		acc = sha512.Sum384(append(acc[:], childHash[:]...))
	}
	return acc
}
