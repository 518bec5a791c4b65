package main

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
)

const defaultAuditionNotes = "C3 E3 G3 C4 r C4"

// auditionNotes plays a space or comma separated note list such as
// "C4 E4 G4 r C5" on the DX7's channel.
func auditionNotes(d *DX7, notesText string) error {
	channel := d.channel
	tokens := strings.FieldsFunc(notesText, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';' || r == '|'
	})
	if len(tokens) == 0 {
		return errors.New("no notes provided")
	}

	for _, tok := range tokens {
		n, isRest, err := parseNoteToken(tok)
		if err != nil {
			return errors.Wrapf(err, "invalid note %q", tok)
		}

		if isRest {
			time.Sleep(360 * time.Millisecond)
			continue
		}

		if err := d.Send(midi.NoteOn(channel, n, 100)); err != nil {
			return errors.Wrapf(err, "note on failed for %d", n)
		}
		time.Sleep(300 * time.Millisecond)
		if err := d.Send(midi.NoteOff(channel, n)); err != nil {
			return errors.Wrapf(err, "note off failed for %d", n)
		}
		time.Sleep(60 * time.Millisecond)
	}

	return nil
}

var noteSemitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// parseNoteToken reads a note name like "C#4" or "Eb3" (C4 is MIDI note 60),
// or a rest written "r" or "rest".
func parseNoteToken(tok string) (note uint8, isRest bool, err error) {
	t := strings.TrimSpace(tok)
	switch {
	case t == "":
		return 0, false, errors.New("empty token")
	case strings.EqualFold(t, "r"), strings.EqualFold(t, "rest"):
		return 0, true, nil
	case len(t) < 2:
		return 0, false, errors.New("too short")
	}

	semitone, ok := noteSemitones[strings.ToUpper(t[:1])[0]]
	if !ok {
		return 0, false, errors.Errorf("invalid note letter %q", t[:1])
	}

	rest := t[1:]
	switch rest[0] {
	case '#':
		semitone++
		rest = rest[1:]
	case 'b', 'B':
		semitone--
		rest = rest[1:]
	}
	if rest == "" {
		return 0, false, errors.New("missing octave")
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false, errors.Wrap(err, "invalid octave")
	}

	n := 12*(octave+1) + semitone
	if n < 0 || n > 127 {
		return 0, false, errors.Errorf("MIDI note out of range: %d", n)
	}
	return uint8(n), false, nil
}
