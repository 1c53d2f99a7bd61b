package wire

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTolerantScalars(t *testing.T) {
	var payload struct {
		ID      String  `json:"id"`
		Budget  Float   `json:"budget"`
		Spent   Float   `json:"spent"`
		Bad     Float   `json:"bad"`
		Prog    Int     `json:"progress"`
		Members Strings `json:"team_members"`
		Tags    Strings `json:"tags"`
		Missing String  `json:"missing"`
	}
	body := `{"id": 42, "budget": "150000.50", "spent": 900, "bad": "n/a", "progress": "75",
		"team_members": ["a", 7], "tags": "not-a-list", "missing": null}`
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	assert.Equal(t, String("42"), payload.ID)
	assert.InDelta(t, 150000.50, float64(payload.Budget), 1e-9)
	assert.InDelta(t, 900, float64(payload.Spent), 1e-9)
	assert.Zero(t, payload.Bad)
	assert.Equal(t, Int(75), payload.Prog)
	assert.Equal(t, []string{"a", "7"}, payload.Members.Slice())
	assert.Equal(t, []string{}, payload.Tags.Slice())
	assert.Empty(t, payload.Missing)
}

func TestParseLeadingFloat(t *testing.T) {
	assert.InDelta(t, 1500.5, parseLeadingFloat("1500.50 PHP"), 1e-9)
	assert.Zero(t, parseLeadingFloat("abc"))
	assert.Zero(t, parseLeadingFloat("NaN"))
}

func TestParseTime(t *testing.T) {
	d, ok := ParseTime("2024-02-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), d)

	ts, ok := ParseTime("2024-02-15T10:30:00")
	require.True(t, ok)
	assert.Equal(t, 10, ts.Hour())

	z, ok := ParseTime("2024-02-15T10:30:00+08:00")
	require.True(t, ok)
	assert.Equal(t, 2, z.UTC().Hour())

	_, ok = ParseTime("soon")
	assert.False(t, ok)
	_, ok = ParseTime("")
	assert.False(t, ok)
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "2024-02-15T10:30:00.000Z", Timestamp(time.Date(2024, 2, 15, 10, 30, 0, 0, time.UTC)))
}
