// Package b64 implements the wire encoding used throughout the network's
// JSON: URL-safe base64 without padding, plus the small set of big-integer
// helpers needed to move quantities between their decimal wire form and the
// byte/hex forms the Merkle and deep-hash code wants.
package b64

import (
	"encoding/base64"
	"math/big"

	"github.com/arweave-go/uploader/pkg/arerr"
)

var encoding = base64.RawURLEncoding

// Encode returns the URL-safe, unpadded base64 form of b.
func Encode(b []byte) string {
	return encoding.EncodeToString(b)
}

// Decode parses a URL-safe, unpadded base64 string back into bytes.
// Characters outside the alphabet (including standard-base64 padding or
// '+'/'/') are rejected.
func Decode(s string) ([]byte, error) {
	b, err := encoding.DecodeString(s)
	if err != nil {
		return nil, &arerr.InvalidBase64{Err: err}
	}
	return b, nil
}

// DecimalToBytes converts an ASCII decimal string (e.g. a reward or
// quantity) to its big-endian byte representation.
func DecimalToBytes(decimal string) ([]byte, error) {
	n, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return nil, &arerr.InvalidBase64{Err: errNotDecimal(decimal)}
	}
	return n.Bytes(), nil
}

// BytesToDecimal converts big-endian bytes to an ASCII decimal string.
func BytesToDecimal(b []byte) string {
	return new(big.Int).SetBytes(b).String()
}

// HexToDecimal converts a hex string to an ASCII decimal string, used when
// translating between winston quantities expressed in the two notations.
func HexToDecimal(hexStr string) (string, error) {
	n, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		return "", &arerr.InvalidBase64{Err: errNotHex(hexStr)}
	}
	return n.String(), nil
}

// DecimalToHex is the inverse of HexToDecimal.
func DecimalToHex(decimal string) (string, error) {
	n, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		return "", &arerr.InvalidBase64{Err: errNotDecimal(decimal)}
	}
	return n.Text(16), nil
}

type decodeError string

func (e decodeError) Error() string { return string(e) }

func errNotDecimal(s string) error { return decodeError("not a decimal integer: " + s) }
func errNotHex(s string) error     { return decodeError("not a hex integer: " + s) }
