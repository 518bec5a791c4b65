package main

import (
	"strings"
	"testing"
)

func TestFormatVoiceList(t *testing.T) {
	payload := testPayload(func(n int, p *PackedVoice) {
		if n == 20 {
			p[pkName] = 0x80
		}
	})
	out := formatVoiceList("ROM1A.syx", mustParse(t, testDump(payload)))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 17 {
		t.Fatalf("expected title and 16 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "ROM1A.syx") {
		t.Errorf("title missing from %q", lines[0])
	}
	if !strings.Contains(lines[1], "VOICE 01") || !strings.Contains(lines[1], "VOICE 17") {
		t.Errorf("first row should hold voices 1 and 17, got %q", lines[1])
	}
	if !strings.Contains(lines[16], "VOICE 16") || !strings.Contains(lines[16], "32") {
		t.Errorf("last row should hold voices 16 and 32, got %q", lines[16])
	}
	if !strings.Contains(lines[4], "<invalid>") {
		t.Errorf("voice 20 should be shown as invalid, got %q", lines[4])
	}
}
