package main

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func randomVoice(rng *rand.Rand, name string) UnpackedVoice {
	var p PackedVoice
	rng.Read(p[:])
	copy(p[pkName:pkName+pkNameLen], name+"          ")
	return Unpack(&p)
}

func TestVoiceParamsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		u := randomVoice(rng, "BRASS   1")

		v := NewVoice(&u)
		if v.Name != "BRASS   1" {
			t.Fatalf("expected name %q, got %q", "BRASS   1", v.Name)
		}
		for n, op := range v.Operators {
			if !op.Enabled {
				t.Errorf("operator %d should be enabled", n+1)
			}
		}

		back, err := v.Params()
		if err != nil {
			t.Fatalf("Params failed: %v", err)
		}
		if back != u {
			t.Fatalf("round trip changed the voice:\n got %v\nwant %v", back, u)
		}
	}
}

func TestVoiceOperatorOrder(t *testing.T) {
	var u UnpackedVoice
	for n := 1; n <= numOperators; n++ {
		u[operatorBase(n)+upOpOutLevel] = byte(n * 10)
	}
	u[operatorMaskIdx] = 0x20 // operator 1 only

	v := NewVoice(&u)
	for i, op := range v.Operators {
		if op.OutputLevel != byte((i+1)*10) {
			t.Errorf("operator %d: expected output level %d, got %d", i+1, (i+1)*10, op.OutputLevel)
		}
		if op.Enabled != (i == 0) {
			t.Errorf("operator %d: enabled = %v", i+1, op.Enabled)
		}
	}
}

func TestVoiceParamsClamps(t *testing.T) {
	v := &Voice{Name: "LOUD", Algorithm: 200, Transpose: 99}
	v.Operators[0].FreqCoarse = 90

	u, err := v.Params()
	if err != nil {
		t.Fatalf("Params failed: %v", err)
	}
	if u[algorithmIdx] != 31 || u[transposeIdx] != 48 {
		t.Errorf("expected algorithm 31 transpose 48, got %d %d", u[algorithmIdx], u[transposeIdx])
	}
	if got := u[operatorBase(1)+upOpCoarse]; got != 31 {
		t.Errorf("expected coarse 31, got %d", got)
	}
	if got := string(u[nameIdx : nameIdx+nameLen]); got != "LOUD      " {
		t.Errorf("expected padded name, got %q", got)
	}
}

func TestVoiceParamsRejectsBadNames(t *testing.T) {
	for _, name := range []string{"ELEVEN CHAR", "PIANOé"} {
		v := &Voice{Name: name}
		if _, err := v.Params(); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}

func TestEncodeDecodeVoices(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sel := []Selection{
		{Index: 4, Name: "GUITAR 1", Voice: randomVoice(rng, "GUITAR 1")},
		{Index: 11, Name: "MARIMBA", Voice: randomVoice(rng, "MARIMBA")},
	}

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			data, err := EncodeVoices(format, sel)
			if err != nil {
				t.Fatalf("EncodeVoices failed: %v", err)
			}
			voices, err := DecodeVoices(data)
			if err != nil {
				t.Fatalf("DecodeVoices failed: %v", err)
			}
			if len(voices) != len(sel) {
				t.Fatalf("expected %d voices, got %d", len(sel), len(voices))
			}
			for i, v := range voices {
				if v.Number != sel[i].Index || v.Name != sel[i].Name {
					t.Errorf("voice %d: got number %d name %q", i, v.Number, v.Name)
				}
				u, err := v.Params()
				if err != nil {
					t.Fatalf("Params failed: %v", err)
				}
				if u != sel[i].Voice {
					t.Errorf("voice %d parameters changed in %s", i, format)
				}
			}
		})
	}

	if _, err := EncodeVoices("xml", sel); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestDecodeVoice(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	sel := []Selection{{Index: 12, Name: "CLAV 1", Voice: randomVoice(rng, "CLAV 1")}}

	list, err := EncodeVoices("json", sel)
	if err != nil {
		t.Fatal(err)
	}
	yamlList, err := EncodeVoices("yaml", sel)
	if err != nil {
		t.Fatal(err)
	}
	object, err := json.Marshal(NewVoice(&sel[0].Voice))
	if err != nil {
		t.Fatal(err)
	}

	for name, data := range map[string][]byte{"json list": list, "yaml list": yamlList, "json object": object} {
		t.Run(name, func(t *testing.T) {
			v, err := DecodeVoice(data)
			if err != nil {
				t.Fatalf("DecodeVoice failed: %v", err)
			}
			u, err := v.Params()
			if err != nil {
				t.Fatalf("Params failed: %v", err)
			}
			if u != sel[0].Voice {
				t.Errorf("decoded voice differs from the encoded one")
			}
		})
	}

	two, err := EncodeVoices("json", append(sel, sel[0]))
	if err != nil {
		t.Fatal(err)
	}
	for _, data := range [][]byte{two, []byte("[]"), []byte("{not json")} {
		if _, err := DecodeVoice(data); err == nil {
			t.Errorf("expected error for %.20q", data)
		}
	}
}
