package main

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestExtractEPiano(t *testing.T) {
	payload := make([]byte, BulkDataSize)
	copy(payload[pkName:], "E.PIANO 1 ")
	d := mustParse(t, testDump(payload))

	sel, errs := Extract(d, []int{1})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(sel) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(sel))
	}

	s := sel[0]
	if s.Index != 1 {
		t.Errorf("expected index 1, got %d", s.Index)
	}
	if s.Name != "E.PIANO 1" {
		t.Errorf("expected name %q, got %q", "E.PIANO 1", s.Name)
	}

	for i := 0; i < 145; i++ {
		if s.Voice[i] != 0 {
			t.Errorf("param %d: expected 0, got %d", i, s.Voice[i])
		}
	}
	if got := string(s.Voice[145:155]); got != "E.PIANO 1 " {
		t.Errorf("expected name params %q, got %q", "E.PIANO 1 ", got)
	}
	if s.Voice[155] != 0x3F {
		t.Errorf("expected operator mask 0x3F, got 0x%02X", s.Voice[155])
	}
}

func TestExtractOrderAndErrors(t *testing.T) {
	d := mustParse(t, testDump(testPayload(nil)))

	sel, errs := Extract(d, []int{3, 0, 1, 3, 33})

	var got []int
	for _, s := range sel {
		got = append(got, s.Index)
	}
	if !reflect.DeepEqual(got, []int{3, 1, 3}) {
		t.Errorf("expected voices [3 1 3], got %v", got)
	}
	if sel[0].Name != "VOICE 03" || sel[1].Name != "VOICE 01" {
		t.Errorf("unexpected names %q, %q", sel[0].Name, sel[1].Name)
	}
	if sel[0].Voice != sel[2].Voice {
		t.Errorf("duplicate selections decoded differently")
	}

	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	for i, want := range []int{0, 33} {
		var ie *IndexError
		if !errors.As(errs[i], &ie) || ie.Index != want {
			t.Errorf("error %d: expected index error for %d, got %v", i, want, errs[i])
		}
	}
}

func TestExtractBadNameIsPerVoice(t *testing.T) {
	payload := testPayload(func(n int, p *PackedVoice) {
		if n == 2 {
			p[pkName] = 0xFF
		}
	})
	d := mustParse(t, testDump(payload))

	sel, errs := Extract(d, []int{1, 2, 3})
	if len(sel) != 2 || sel[0].Index != 1 || sel[1].Index != 3 {
		t.Errorf("expected voices 1 and 3 to decode, got %+v", sel)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	var ee *EncodingError
	if !errors.As(errs[0], &ee) {
		t.Errorf("expected *EncodingError, got %v", errs[0])
	}
}

func TestExtractMatchesUnpack(t *testing.T) {
	d := mustParse(t, testDump(testPayload(nil)))

	sel, _ := Extract(d, []int{17})
	p, _ := d.Voice(17)
	if sel[0].Voice != Unpack(p) {
		t.Errorf("extracted voice differs from Unpack of the packed record")
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		args    []string
		want    []int
		wantErr bool
	}{
		{[]string{"1", "4", "5"}, []int{1, 4, 5}, false},
		{[]string{"1,4,5"}, []int{1, 4, 5}, false},
		{[]string{"11-16"}, []int{11, 12, 13, 14, 15, 16}, false},
		{[]string{"3, 1", "3"}, []int{3, 1, 3}, false},
		{[]string{"0", "33"}, []int{0, 33}, false},
		{[]string{"-2"}, []int{-2}, false},
		{[]string{"x"}, nil, true},
		{[]string{"5-2"}, nil, true},
		{[]string{"1-y"}, nil, true},
		{[]string{"0-32"}, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32}, false},
		{[]string{"30-33"}, nil, true},
		{[]string{"1-30000000"}, nil, true},
		{[]string{"100"}, []int{100}, false},
	}

	for _, tt := range tests {
		got, err := ParseSelection(tt.args)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSelection(%q): expected error, got %v", tt.args, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSelection(%q) failed: %v", tt.args, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseSelection(%q): expected %v, got %v", tt.args, tt.want, got)
		}
	}
}
