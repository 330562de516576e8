package store

import "regexp"

var whitespaceRE = regexp.MustCompile(`\s+`)

// PlayerKey derives the deterministic storage identity of a player from the
// player name and jersey number. Runs of whitespace collapse to a single
// underscore so "De Bruyne" and "De  Bruyne" map to the same key.
func PlayerKey(playerName, jerseyNumber string) string {
	return whitespaceRE.ReplaceAllString(playerName+"_"+jerseyNumber, "_")
}

// StorageKey is the backend key holding a player's placement blob.
func StorageKey(playerKey string) string {
	return "positions:" + playerKey
}
