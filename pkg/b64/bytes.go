package b64

import "encoding/json"

// Bytes is a byte slice that marshals to and from JSON as URL-safe,
// unpadded base64 — the wire representation every binary transaction
// field (id, owner, last_tx, target, data, data_root, signature, tag
// name/value) uses.
type Bytes []byte

func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(Encode(b))
}

func (b *Bytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*b = nil
		return nil
	}
	decoded, err := Decode(s)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
