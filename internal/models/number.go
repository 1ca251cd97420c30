package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// OptionalNumber is a numeric request field that may arrive as a JSON number,
// a numeric string, an empty string or null. Parsing is deferred to Float so
// that a bad value surfaces as a validation error rather than a decode error.
type OptionalNumber struct {
	raw string
	set bool
}

// NewOptionalNumber builds a set value from its textual form.
func NewOptionalNumber(raw string) OptionalNumber {
	return OptionalNumber{raw: raw, set: true}
}

func (n *OptionalNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = OptionalNumber{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = OptionalNumber{}
			return nil
		}
		*n = OptionalNumber{raw: s, set: true}
		return nil
	}
	*n = OptionalNumber{raw: string(data), set: true}
	return nil
}

func (n OptionalNumber) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

// IsSet reports whether a non-empty value was supplied.
func (n OptionalNumber) IsSet() bool {
	return n.set
}

func (n OptionalNumber) String() string {
	return n.raw
}

// Float parses the value. It returns nil for an absent value. A decimal comma
// is accepted when the value has no dot ("23,5").
func (n OptionalNumber) Float() (*float64, error) {
	if !n.set {
		return nil, nil
	}
	s := n.raw
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, strconv.ErrSyntax
	}
	return &v, nil
}
