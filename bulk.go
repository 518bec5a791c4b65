package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
)

const (
	VoicesPerBank = 32
	BulkDataSize  = VoicesPerBank * PackedVoiceSize // 4096

	sysExStart    = 0xF0
	sysExEnd      = 0xF7
	yamahaID      = 0x43
	bulkFormat32  = 0x09
	bulkHeaderLen = 6

	// Sub-status nibbles of the byte following the manufacturer ID.
	subStatusDump    = 0x00
	subStatusRequest = 0x20
)

// BulkDump is a validated 32-voice bulk dump.
type BulkDump struct {
	subStatus byte
	payload   [BulkDataSize]byte
	checksum  byte
	hasSum    bool
}

// ParseBulkDump validates the sysex header of data and copies out the voice
// payload. Trailing checksum and end-of-exclusive bytes are optional.
func ParseBulkDump(data []byte) (*BulkDump, error) {
	if len(data) == 0 || data[0] != sysExStart {
		got := 0
		if len(data) > 0 {
			got = int(data[0])
		}
		return nil, &FormatError{Kind: NotSysEx, Got: got, Want: sysExStart}
	}
	if len(data) < bulkHeaderLen {
		return nil, &FormatError{Kind: Truncated, Got: len(data), Want: bulkHeaderLen}
	}
	if data[1] != yamahaID {
		return nil, &FormatError{Kind: NotYamaha, Got: int(data[1]), Want: yamahaID}
	}
	if data[3] != bulkFormat32 {
		return nil, &FormatError{Kind: NotBulkVoiceFormat, Got: int(data[3]), Want: bulkFormat32}
	}
	if count := int(data[4])*128 + int(data[5]); count != BulkDataSize {
		return nil, &FormatError{Kind: ByteCountMismatch, Got: count, Want: BulkDataSize}
	}

	body := data[bulkHeaderLen:]
	if len(body) < BulkDataSize {
		return nil, &FormatError{Kind: Truncated, Got: len(body), Want: BulkDataSize}
	}

	d := &BulkDump{subStatus: data[2]}
	copy(d.payload[:], body[:BulkDataSize])
	if len(body) > BulkDataSize {
		d.checksum = body[BulkDataSize]
		d.hasSum = true
	}
	return d, nil
}

// LoadBulkDump reads and parses a .syx file.
func LoadBulkDump(path string) (*BulkDump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	d, err := ParseBulkDump(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return d, nil
}

// Voice returns the packed record of voice n (1-32). The record aliases the
// dump's payload.
func (d *BulkDump) Voice(n int) (*PackedVoice, error) {
	if n < 1 || n > VoicesPerBank {
		return nil, &IndexError{Index: n}
	}
	off := (n - 1) * PackedVoiceSize
	return (*PackedVoice)(d.payload[off : off+PackedVoiceSize]), nil
}

// NameOf decodes the name of a voice taken from this dump.
func (d *BulkDump) NameOf(p *PackedVoice) (string, error) {
	return p.Name()
}

// Names returns all 32 voice names in bank order.
func (d *BulkDump) Names() ([]string, error) {
	names := make([]string, 0, VoicesPerBank)
	for n := 1; n <= VoicesPerBank; n++ {
		p, _ := d.Voice(n)
		name, err := p.Name()
		if err != nil {
			return names, errors.Wrapf(err, "voice %d", n)
		}
		names = append(names, name)
	}
	return names, nil
}

// Channel is the 0-based MIDI channel the dump was sent on.
func (d *BulkDump) Channel() byte {
	return d.subStatus & 0x0F
}

// Checksum returns the checksum byte that followed the payload and whether it
// matches the payload. ok is false when no checksum was present.
func (d *BulkDump) Checksum() (sum byte, ok bool) {
	if !d.hasSum {
		return 0, false
	}
	return d.checksum, d.checksum == checksum(d.payload[:])
}

// Bytes re-frames the dump as a complete sysex message.
func (d *BulkDump) Bytes() []byte {
	out := make([]byte, 0, bulkHeaderLen+BulkDataSize+2)
	out = append(out, sysExStart, yamahaID, d.subStatus&0x0F, bulkFormat32, BulkDataSize>>7, BulkDataSize&0x7F)
	out = append(out, d.payload[:]...)
	return append(out, checksum(d.payload[:]), sysExEnd)
}

// Name decodes the space padded ASCII name of the voice.
func (p *PackedVoice) Name() (string, error) {
	raw := p[pkName : pkName+pkNameLen]
	for i, b := range raw {
		if b >= 0x80 {
			return "", &EncodingError{Offset: i, Byte: b}
		}
	}
	return string(bytes.TrimFunc(raw, isNameSpace)), nil
}

// isNameSpace reports ASCII whitespace, including the file, group, record
// and unit separators 0x1C-0x1F.
func isNameSpace(r rune) bool {
	return r == ' ' || (r >= '\t' && r <= '\r') || (r >= 0x1C && r <= 0x1F)
}

// checksum is the 7-bit two's complement of the sum of data.
func checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return -sum & 0x7F
}

// bulkDumpRequest asks a DX7 listening on channel (0-based) for its 32 voices.
func bulkDumpRequest(channel byte) []byte {
	return []byte{sysExStart, yamahaID, subStatusRequest | channel&0x0F, bulkFormat32, sysExEnd}
}
