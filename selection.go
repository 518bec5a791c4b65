package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Selection is one decoded voice picked out of a bulk dump.
type Selection struct {
	Index int           `json:"index" yaml:"index"`
	Name  string        `json:"name" yaml:"name"`
	Voice UnpackedVoice `json:"-" yaml:"-"`
}

// Extract decodes the voices with the given 1-based numbers in the order
// given. A bad entry is reported in errs and skipped; the rest are still
// decoded.
func Extract(d *BulkDump, indices []int) (sel []Selection, errs []error) {
	for _, n := range indices {
		p, err := d.Voice(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		name, err := d.NameOf(p)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "voice %d", n))
			continue
		}
		sel = append(sel, Selection{Index: n, Name: name, Voice: Unpack(p)})
	}
	return sel, errs
}

// ParseSelection turns arguments like "1 4,5 11-16" into voice numbers.
// Single numbers are not range checked here; Extract reports those per
// entry. A range may not end past the last voice of a bank.
func ParseSelection(args []string) ([]int, error) {
	var out []int
	for _, arg := range args {
		tokens := strings.FieldsFunc(arg, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		for _, tok := range tokens {
			lo, hi, isRange := strings.Cut(tok, "-")
			if !isRange || lo == "" {
				n, err := strconv.Atoi(tok)
				if err != nil {
					return nil, errors.Errorf("invalid voice number %q", tok)
				}
				out = append(out, n)
				continue
			}
			from, err := strconv.Atoi(lo)
			if err != nil {
				return nil, errors.Errorf("invalid voice range %q", tok)
			}
			to, err := strconv.Atoi(hi)
			if err != nil || to < from || to > VoicesPerBank {
				return nil, errors.Errorf("invalid voice range %q", tok)
			}
			for n := from; n <= to; n++ {
				out = append(out, n)
			}
		}
	}
	return out, nil
}
