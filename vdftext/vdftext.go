package vdftext

import "strings"

// Line-scoped parsing helpers for Steam's loosely nested, quote-delimited
// key-value text format (loginusers.vdf and friends). Only single-line
// "key" "value" records and account section headers are handled, a full
// tree parser is not needed for the login history file.

const (
	// SteamID64 values are 17 digits and share a fixed platform prefix
	steamIDLength = 17
	steamIDPrefix = "7656"
)

// ParseLine extracts a ("key", "value") pair from one line of VDF text.
// Characters outside quotes are ignored, so arbitrary indentation and tabs
// between tokens are tolerated. Lines with fewer than two quoted tokens
// yield ok=false. Embedded quote characters inside values are not supported.
func ParseLine(line string) (key string, value string, ok bool) {
	var tokens []string
	current := make([]rune, 0, len(line))
	inQuotes := false

	for _, c := range line {
		if c == '"' {
			if inQuotes {
				tokens = append(tokens, string(current))
				current = current[:0]
			}
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			current = append(current, c)
		}
	}

	if len(tokens) < 2 {
		return "", "", false
	}
	return tokens[0], tokens[1], true
}

// SteamIDHeader reports whether a line is the start of a new account record:
// a single quoted token of exactly 17 digits beginning with the SteamID64
// platform prefix. Returns the bare id on a match.
func SteamIDHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) != steamIDLength+2 || trimmed[0] != '"' || trimmed[len(trimmed)-1] != '"' {
		return "", false
	}

	id := trimmed[1 : len(trimmed)-1]
	if !isDigits(id) {
		return "", false
	}
	if id[:len(steamIDPrefix)] != steamIDPrefix {
		return "", false
	}
	return id, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
