package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int is a count column. The backend serializes bigint/numeric aggregates either as
// JSON numbers or as numeric strings, and SUM over an empty set comes back null.
type Int int64

// UnmarshalJSON accepts numbers, numeric strings, and null (zero).
func (n *Int) UnmarshalJSON(data []byte) error {
	f, err := decodeNumeric(data)
	if err != nil {
		return err
	}
	*n = Int(math.Round(f))
	return nil
}

// Number is a decimal column (averages, percentages).
type Number float64

// UnmarshalJSON accepts numbers, numeric strings, and null (zero).
func (n *Number) UnmarshalJSON(data []byte) error {
	f, err := decodeNumeric(data)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Float returns the value as float64.
func (n Number) Float() float64 { return float64(n) }

// String trims trailing zeros so 12.50 renders as 12.5.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Text is a loosely typed label column (e.g. metric values that may be numbers).
type Text string

// UnmarshalJSON accepts strings, numbers, booleans, and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(string(data))
	return nil
}

func decodeNumeric(data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("admin: invalid numeric value %q", s)
		}
		return f, nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return 0, err
	}
	return f, nil
}
