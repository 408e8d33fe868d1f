package http

import (
	"bytes"
	"fmt"
	"strconv"
)

// Inbound payloads come from JSON bodies as well as multipart forms, so a
// numeric field may arrive as a native number or as a string. These types
// accept both; anything non-numeric is a decode error, never a silent zero.

// FlexFloat is a float64 that also accepts quoted numeric strings
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	raw := unquote(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("invalid numeric value %q", data)
	}
	v, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", data)
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt is an int that also accepts quoted numeric strings
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	raw := unquote(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("invalid numeric value %q", data)
	}
	v, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", data)
	}
	*i = FlexInt(v)
	return nil
}

// FlexUint is a uint that also accepts quoted numeric strings
type FlexUint uint

// UnmarshalJSON implements json.Unmarshaler
func (u *FlexUint) UnmarshalJSON(data []byte) error {
	raw := unquote(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("invalid numeric value %q", data)
	}
	v, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", data)
	}
	*u = FlexUint(v)
	return nil
}

func unquote(data []byte) []byte {
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		return data[1 : len(data)-1]
	}
	return data
}
