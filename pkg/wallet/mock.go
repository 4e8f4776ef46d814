package wallet

import (
	"crypto/sha256"
	"sync"

	"github.com/arweave-go/uploader/pkg/b64"
)

// MockSigner implements Signer for tests, following the same
// error-override shape as the other collaborator mocks in this module:
// sensible defaults, with public fields letting a test force a failure.
type MockSigner struct {
	mu sync.Mutex

	Modulus []byte
	SignFn  func(msg []byte) ([]byte, error)

	SignErr error

	// Signed records every message this signer has been asked to sign,
	// for assertions in caller tests.
	Signed [][]byte
}

// NewMockSigner returns a MockSigner with a fixed modulus and a default
// Sign implementation that returns a deterministic, modulus-length
// "signature" (not a real RSA-PSS signature — good enough to exercise the
// assembler and pipeline without a real private key).
func NewMockSigner(modulusSize int) *MockSigner {
	modulus := make([]byte, modulusSize)
	for i := range modulus {
		modulus[i] = byte(i + 1)
	}
	return &MockSigner{Modulus: modulus}
}

func (m *MockSigner) PublicModulus() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte{}, m.Modulus...)
}

func (m *MockSigner) Sign(msg []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Signed = append(m.Signed, append([]byte{}, msg...))

	if m.SignErr != nil {
		return nil, m.SignErr
	}
	if m.SignFn != nil {
		return m.SignFn(msg)
	}

	sig := sha256.Sum256(append(append([]byte{}, m.Modulus...), msg...))
	out := make([]byte, len(m.Modulus))
	for i := range out {
		out[i] = sig[i%len(sig)]
	}
	return out, nil
}

func (m *MockSigner) Address() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := sha256.Sum256(m.Modulus)
	return b64.Encode(sum[:])
}
