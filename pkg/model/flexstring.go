package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexString holds a JSON value that upstream payloads send either as a
// string or as a number. The original encoding is preserved when the value
// is marshalled back, so a numeric price stays numeric on the wire.
type FlexString struct {
	raw      string
	isNumber bool
}

func NewFlexString(s string) FlexString {
	return FlexString{raw: s}
}

func NewFlexNumber(n json.Number) FlexString {
	return FlexString{raw: n.String(), isNumber: true}
}

func (v FlexString) String() string {
	return v.raw
}

func (v FlexString) IsEmpty() bool {
	return v.raw == ""
}

func (v *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = FlexString{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FlexString{raw: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Objects, arrays and booleans carry nothing usable here.
		*v = FlexString{}
		return nil
	}
	*v = FlexString{raw: n.String(), isNumber: true}
	return nil
}

func (v FlexString) MarshalJSON() ([]byte, error) {
	if v.isNumber {
		if _, err := strconv.ParseFloat(v.raw, 64); err != nil {
			return nil, fmt.Errorf("invalid numeric value %q: %w", v.raw, err)
		}
		return []byte(v.raw), nil
	}
	return json.Marshal(v.raw)
}
