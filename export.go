package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kennygrant/sanitize"
	"github.com/pkg/errors"
)

// voiceFileName names the single voice file of s, e.g. "DX7-01-E-PIANO-1.syx".
func voiceFileName(s Selection) string {
	name := sanitize.BaseName(s.Name)
	if name != "" {
		name = "-" + name
	}
	return fmt.Sprintf("DX7-%02d%s.syx", s.Index, name)
}

// ExportVoices writes each selected voice as a single voice dump into dst and
// returns the written paths. Duplicate selections overwrite the same file.
func ExportVoices(dst string, channel byte, sel []Selection) ([]string, error) {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, errors.WithStack(err)
	}

	var written []string
	for _, s := range sel {
		filename := filepath.Join(dst, voiceFileName(s))
		if err := os.WriteFile(filename, SingleVoiceDump(channel, &s.Voice), 0644); err != nil {
			return written, errors.WithStack(err)
		}
		written = append(written, filename)
	}
	return written, nil
}
