// Package roster imports player data for garment personalization.
//
// Rosters arrive from team spreadsheets exported as CSV, or as JSON produced
// by other tools. Both carry the same field set: player name, jersey number,
// garment size, position, team name, and a free-form custom tag.
package roster

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotstitch/dotstitch/pkg/errors"
	"github.com/dotstitch/dotstitch/pkg/store"
)

// Player is one imported roster entry. The jersey number is kept as a
// string: "00" and "0" are distinct on a garment.
type Player struct {
	PlayerName   string `json:"playerName"`
	JerseyNumber string `json:"jerseyNumber"`
	Size         string `json:"size"`
	Position     string `json:"position,omitempty"`
	TeamName     string `json:"teamName,omitempty"`
	CustomTag    string `json:"customTag,omitempty"`
}

// Key returns the player's deterministic placement-store identity.
func (p Player) Key() string {
	return store.PlayerKey(p.PlayerName, p.JerseyNumber)
}

// Label returns the display form used by the identifier label and CLI lists.
func (p Player) Label() string {
	return p.PlayerName + " #" + p.JerseyNumber
}

// Validate checks the fields required for composition and export.
func (p Player) Validate() error {
	if err := errors.ValidatePlayerName(p.PlayerName); err != nil {
		return err
	}
	return errors.ValidateJerseyNumber(p.JerseyNumber)
}

// LoadFile reads a roster from a CSV or JSON file, dispatching on the
// extension.
func LoadFile(path string) ([]Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "open roster %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f)
	case ".json":
		return ParseJSON(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidRoster, "unsupported roster format: %s", filepath.Ext(path))
	}
}

// ParseJSON reads a JSON array of players.
func ParseJSON(r io.Reader) ([]Player, error) {
	var players []Player
	dec := json.NewDecoder(r)
	if err := dec.Decode(&players); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "parse roster JSON")
	}
	return validateAll(players)
}

func validateAll(players []Player) ([]Player, error) {
	if len(players) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "roster contains no players")
	}
	for i, p := range players {
		if err := p.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "roster entry %d", i+1)
		}
	}
	return players, nil
}

// Find returns the first player matching name and number, or an error.
func Find(players []Player, name, number string) (Player, error) {
	for _, p := range players {
		if p.PlayerName == name && (number == "" || p.JerseyNumber == number) {
			return p, nil
		}
	}
	return Player{}, errors.New(errors.ErrCodePlayerNotFound, "player %q not in roster", name)
}
