package config

import "testing"

func TestWithDefaultsFillsZeroFields(t *testing.T) {
	got := Config{}.WithDefaults()
	if got.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", got.BaseURL, DefaultBaseURL)
	}
	if got.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want %v", got.HTTPTimeout, DefaultHTTPTimeout)
	}
	if got.Buffer != DefaultBuffer {
		t.Errorf("Buffer = %d, want %d", got.Buffer, DefaultBuffer)
	}
}

func TestWithDefaultsPreservesSetFields(t *testing.T) {
	c := Config{BaseURL: "http://localhost:1984", Buffer: 4}
	got := c.WithDefaults()
	if got.BaseURL != "http://localhost:1984" {
		t.Errorf("BaseURL = %q, want override preserved", got.BaseURL)
	}
	if got.Buffer != 4 {
		t.Errorf("Buffer = %d, want override preserved", got.Buffer)
	}
}
