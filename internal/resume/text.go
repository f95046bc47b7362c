package resume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Text is a scalar the backend sends either as a JSON string or as a number.
type Text string

// UnmarshalJSON accepts strings, numbers and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode text: %w", err)
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decode text: %w", err)
	}
	*t = Text(n.String())
	return nil
}

// Float returns the numeric value, if the text holds one.
func (t Text) Float() (float64, bool) {
	f, err := strconv.ParseFloat(string(t), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (t Text) String() string { return string(t) }
