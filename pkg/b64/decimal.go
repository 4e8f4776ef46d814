package b64

import (
	"bytes"
	"encoding/json"
)

// DecimalString is an ASCII decimal integer (reward, quantity, data_size)
// that always marshals as a quoted JSON string but unmarshals from either
// a quoted string or a bare JSON number, since the network is documented
// to accept both for some fields.
type DecimalString string

func (d DecimalString) MarshalJSON() ([]byte, error) {
	s := string(d)
	if s == "" {
		s = "0"
	}
	return json.Marshal(s)
}

func (d *DecimalString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*d = DecimalString(s)
		return nil
	}
	*d = DecimalString(trimmed)
	return nil
}
