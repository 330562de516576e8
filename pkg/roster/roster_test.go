package roster

import (
	"strings"
	"testing"

	"github.com/dotstitch/dotstitch/pkg/errors"
)

func TestParseCSV(t *testing.T) {
	csvData := `Player Name,Number,Size,Position,Team,Tag
Jordan,23,34,Guard,Bulls,captain
De Bruyne,17,46,Midfield,City,
`
	players, err := ParseCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 2 {
		t.Fatalf("players = %d, want 2", len(players))
	}

	p := players[0]
	if p.PlayerName != "Jordan" || p.JerseyNumber != "23" || p.Size != "34" {
		t.Errorf("player[0] = %+v", p)
	}
	if p.Position != "Guard" || p.TeamName != "Bulls" || p.CustomTag != "captain" {
		t.Errorf("player[0] extras = %+v", p)
	}
	if players[1].Key() != "De_Bruyne_17" {
		t.Errorf("Key = %q", players[1].Key())
	}
}

func TestParseCSVHeaderVariants(t *testing.T) {
	csvData := "player_name,jersey_number,jersey_size\nJordan,23,34\n"
	players, err := ParseCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatal(err)
	}
	if players[0].PlayerName != "Jordan" || players[0].Size != "34" {
		t.Errorf("player = %+v", players[0])
	}
}

func TestParseCSVMissingColumns(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("size,position\n34,Guard\n"))
	if !errors.Is(err, errors.ErrCodeInvalidRoster) {
		t.Errorf("err = %v, want INVALID_ROSTER", err)
	}
}

func TestParseCSVInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty roster", "name,number\n"},
		{"bad number", "name,number\nJordan,2x\n"},
		{"empty name", "name,number\n,23\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseCSV(strings.NewReader(tt.csv)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	data := `[{"playerName":"Jordan","jerseyNumber":"23","size":"34","teamName":"Bulls"}]`
	players, err := ParseJSON(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(players) != 1 || players[0].Label() != "Jordan #23" {
		t.Errorf("players = %+v", players)
	}
}

func TestFind(t *testing.T) {
	players := []Player{
		{PlayerName: "Jordan", JerseyNumber: "23"},
		{PlayerName: "Jordan", JerseyNumber: "45"},
	}

	p, err := Find(players, "Jordan", "45")
	if err != nil || p.JerseyNumber != "45" {
		t.Errorf("Find = %+v, %v", p, err)
	}

	// Empty number matches the first entry with that name.
	p, _ = Find(players, "Jordan", "")
	if p.JerseyNumber != "23" {
		t.Errorf("Find(any number) = %+v", p)
	}

	if _, err := Find(players, "Pippen", ""); !errors.Is(err, errors.ErrCodePlayerNotFound) {
		t.Errorf("err = %v, want PLAYER_NOT_FOUND", err)
	}
}
