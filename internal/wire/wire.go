// Package wire holds tolerant scalar types for decoding remote payloads and
// the date formats the dashboard exchanges.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// String decodes from a JSON string or number. Identifiers arrive as either.
type String string

func (s *String) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = String(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("wire: expected string or number, got %s", b)
	}
	*s = String(n.String())
	return nil
}

// Float decodes from a JSON number or numeric string. Unparseable strings
// decode to zero.
type Float float64

func (f *Float) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = Float(parseLeadingFloat(v))
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("wire: expected number, got %s", b)
	}
	*f = Float(v)
	return nil
}

// Int decodes like Float and truncates toward zero.
type Int int

func (i *Int) UnmarshalJSON(b []byte) error {
	var f Float
	if err := f.UnmarshalJSON(b); err != nil {
		return err
	}
	*i = Int(math.Trunc(float64(f)))
	return nil
}

// parseLeadingFloat reads the longest numeric prefix of s, so "1500.50 PHP"
// yields 1500.5 and "abc" yields 0.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	for end := len(s); end > 0; end-- {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0
			}
			return v
		}
	}
	return 0
}

// Strings decodes a JSON array of strings or numbers. Anything else decodes
// to an empty slice.
type Strings []string

func (s *Strings) UnmarshalJSON(b []byte) error {
	var raw []String
	if err := json.Unmarshal(b, &raw); err != nil {
		*s = []string{}
		return nil
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = string(v)
	}
	*s = out
	return nil
}

// Slice returns a non-nil copy.
func (s Strings) Slice() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

const (
	DateLayout      = "2006-01-02"
	localTimeLayout = "2006-01-02T15:04:05"
)

// ParseTime parses a wire date or timestamp. Date-only and zone-less values
// are read in UTC.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, localTimeLayout, DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Timestamp formats t the way the dashboard stamps createdAt and updatedAt.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
