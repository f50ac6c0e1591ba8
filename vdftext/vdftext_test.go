package vdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		key   string
		value string
		ok    bool
	}{
		{"plain", `"AccountName" "gamer42"`, "AccountName", "gamer42", true},
		{"tabs between tokens", "\t\t\"PersonaName\"\t\t\"The Gamer\"", "PersonaName", "The Gamer", true},
		{"leading junk outside quotes", `   xx "MostRecent" yy "1" zz`, "MostRecent", "1", true},
		{"extra tokens ignored", `"a" "b" "c"`, "a", "b", true},
		{"single token", `"76561198000000000"`, "", "", false},
		{"no quotes", `AccountName gamer42`, "", "", false},
		{"empty line", ``, "", "", false},
		{"empty value", `"Timestamp" ""`, "Timestamp", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, ok := ParseLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestSteamIDHeader(t *testing.T) {
	id, ok := SteamIDHeader("\t\"76561198051239356\"")
	assert.True(t, ok)
	assert.Equal(t, "76561198051239356", id)

	// wrong prefix
	_, ok = SteamIDHeader(`"12345678901234567"`)
	assert.False(t, ok)

	// too short
	_, ok = SteamIDHeader(`"7656119805123935"`)
	assert.False(t, ok)

	// non-digits
	_, ok = SteamIDHeader(`"7656119805123935x"`)
	assert.False(t, ok)

	// a kv line is not a header
	_, ok = SteamIDHeader(`"AccountName" "gamer42"`)
	assert.False(t, ok)
}
