package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportVoices(t *testing.T) {
	d := mustParse(t, testDump(testPayload(nil)))
	sel, _ := Extract(d, []int{1, 12})

	dir := filepath.Join(t.TempDir(), "out")
	written, err := ExportVoices(dir, 4, sel)
	if err != nil {
		t.Fatalf("ExportVoices failed: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files, got %v", written)
	}

	for i, path := range written {
		base := filepath.Base(path)
		prefix := []string{"DX7-01-", "DX7-12-"}[i]
		if !strings.HasPrefix(base, prefix) || !strings.HasSuffix(base, ".syx") {
			t.Errorf("unexpected file name %q", base)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(data, SingleVoiceDump(4, &sel[i].Voice)) {
			t.Errorf("%s does not hold the single voice dump", base)
		}
	}
}

func TestVoiceFileName(t *testing.T) {
	if got := voiceFileName(Selection{Index: 3}); got != "DX7-03.syx" {
		t.Errorf("expected DX7-03.syx for an unnamed voice, got %q", got)
	}
	got := voiceFileName(Selection{Index: 9, Name: "A/B C"})
	if strings.ContainsAny(got, "/ ") {
		t.Errorf("file name %q was not sanitized", got)
	}
}
