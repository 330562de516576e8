package roster

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/dotstitch/dotstitch/pkg/errors"
)

// Column aliases accepted in CSV headers. Spreadsheet exports are messy;
// matching is case-insensitive with spaces and underscores stripped.
var columnAliases = map[string]string{
	"playername":   "playerName",
	"name":         "playerName",
	"player":       "playerName",
	"jerseynumber": "jerseyNumber",
	"number":       "jerseyNumber",
	"no":           "jerseyNumber",
	"size":         "size",
	"jerseysize":   "size",
	"position":     "position",
	"pos":          "position",
	"teamname":     "teamName",
	"team":         "teamName",
	"customtag":    "customTag",
	"tag":          "customTag",
}

// ParseCSV reads a roster from CSV with a header row. Column order is
// free; unknown columns are ignored.
func ParseCSV(r io.Reader) ([]Player, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "read roster header")
	}

	cols := make(map[string]int)
	for i, h := range header {
		norm := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.TrimSpace(h)))
		if field, ok := columnAliases[norm]; ok {
			cols[field] = i
		}
	}
	if _, ok := cols["playerName"]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "roster CSV has no player name column")
	}
	if _, ok := cols["jerseyNumber"]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidRoster, "roster CSV has no jersey number column")
	}

	var players []Player
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRoster, err, "read roster row %d", len(players)+2)
		}
		players = append(players, Player{
			PlayerName:   field(row, cols, "playerName"),
			JerseyNumber: field(row, cols, "jerseyNumber"),
			Size:         field(row, cols, "size"),
			Position:     field(row, cols, "position"),
			TeamName:     field(row, cols, "teamName"),
			CustomTag:    field(row, cols, "customTag"),
		})
	}
	return validateAll(players)
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
