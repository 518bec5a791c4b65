package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadVoiceFile(t *testing.T) {
	d := mustParse(t, testDump(testPayload(nil)))
	sel, _ := Extract(d, []int{6})

	for _, format := range []string{"json", "yaml"} {
		data, err := EncodeVoices(format, sel)
		if err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(t.TempDir(), "voice."+format)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}

		v, err := readVoiceFile(path)
		if err != nil {
			t.Fatalf("readVoiceFile(%s) failed: %v", format, err)
		}
		u, err := v.Params()
		if err != nil {
			t.Fatalf("Params failed: %v", err)
		}
		if u != sel[0].Voice || v.Name != "VOICE 06" {
			t.Errorf("%s: voice read back differs from the extracted one", format)
		}
	}

	if _, err := readVoiceFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("expected error for a missing file")
	}
}
