package errors

import (
	"strings"
	"testing"
)

func TestValidatePlayerName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Jordan", false},
		{"valid with space", "De Bruyne", false},
		{"valid with dash", "Saint-Maximin", false},
		{"valid with apostrophe", "O'Neil", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 200), true},
		{"path traversal", "foo/../bar", true},
		{"slash", "foo/bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlayerName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlayerName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateJerseyNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single digit", "7", false},
		{"double zero", "00", false},
		{"three digits", "123", false},

		{"empty", "", true},
		{"four digits", "1234", true},
		{"letters", "7a", true},
		{"negative", "-7", true},
		{"spaces", " 7", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJerseyNumber(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateJerseyNumber(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
