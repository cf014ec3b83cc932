package pgrange

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes r as a JSON string holding its PostgreSQL text format.
func (r Range[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r.AppendText(nil)))
}

// UnmarshalJSON decodes a JSON string holding the text format of a range. The receiver must already carry a domain,
// for example one returned by Empty. JSON null leaves r unchanged.
func (r *Range[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if r.dom == nil {
		return ErrNoDomain
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("range must be a JSON string: %w", err)
	}

	parsed, err := Parse(r.dom, s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
