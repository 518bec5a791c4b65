package main

import "testing"

func TestParseNoteToken(t *testing.T) {
	tests := []struct {
		tok    string
		note   uint8
		isRest bool
		ok     bool
	}{
		{"C4", 60, false, true},
		{"c4", 60, false, true},
		{"A4", 69, false, true},
		{"C#4", 61, false, true},
		{"Eb3", 51, false, true},
		{"C-1", 0, false, true},
		{"G9", 127, false, true},
		{"r", 0, true, true},
		{"REST", 0, true, true},
		{"", 0, false, false},
		{"H4", 0, false, false},
		{"C", 0, false, false},
		{"C#", 0, false, false},
		{"Cx", 0, false, false},
		{"G#9", 0, false, false},
		{"Cb-1", 0, false, false},
	}

	for _, tt := range tests {
		note, isRest, err := parseNoteToken(tt.tok)
		if (err == nil) != tt.ok {
			t.Errorf("parseNoteToken(%q): unexpected error state %v", tt.tok, err)
			continue
		}
		if !tt.ok {
			continue
		}
		if note != tt.note || isRest != tt.isRest {
			t.Errorf("parseNoteToken(%q): expected (%d, %v), got (%d, %v)", tt.tok, tt.note, tt.isRest, note, isRest)
		}
	}
}
