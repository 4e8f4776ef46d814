// Package wallet defines the signing capability the transaction assembler
// consumes. Key file parsing, RSA-PSS internals, and modulus extraction
// are external collaborators — this package only states the boundary.
package wallet

// Signer is the external signing capability required by pkg/transaction.
// Implementations are expected to perform RSA-PSS over SHA-256 with
// MGF1-SHA-256 and salt length 0, producing a signature |modulus| bytes
// long, but this package does not encode any particular key format or
// crypto library — that is the caller's concern.
type Signer interface {
	// PublicModulus returns the signer's RSA public modulus, big-endian.
	PublicModulus() []byte

	// Sign returns a signature over msg (the transaction's deep hash).
	Sign(msg []byte) ([]byte, error)

	// Address returns the wallet address: base64url(SHA-256(modulus)).
	Address() string
}
