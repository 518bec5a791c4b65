package main

import (
	"fmt"
	"os"
)

const (
	singleVoiceFormat = 0x00
	singleVoiceSize   = 155 // VCED parameters without the operator on/off byte
)

// verbose enables hex dumps of every sysex message sent or received.
var verbose bool

func dumpBytes(data []byte, what string) {
	if !verbose {
		return
	}

	f := os.Stderr

	fmt.Fprintf(f, "Dumping %d bytes of %s:\n", len(data), what)

	for i, b := range data {
		fmt.Fprintf(f, "%d 0x%02X\n", i, b)
	}
}

// SingleVoiceDump frames u as a single voice (VCED) sysex message for a DX7
// on channel (0-based). The receiving DX7 loads it into its edit buffer.
func SingleVoiceDump(channel byte, u *UnpackedVoice) []byte {
	params := u[:singleVoiceSize]

	out := []byte{sysExStart, yamahaID, subStatusDump | channel&0x0F, singleVoiceFormat, singleVoiceSize >> 7, singleVoiceSize & 0x7F}
	out = append(out, params...)
	return append(out, checksum(params), sysExEnd)
}
