package main

import (
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

const bulkDumpTimeout = 10 * time.Second

type DX7 struct {
	channel byte // 0-based
	out     drivers.Out
}

func OpenDX7(channel byte, portIndex int) (*DX7, func(), error) {
	outs, err := drivers.Outs()
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	if portIndex < 0 || portIndex >= len(outs) {
		return nil, nil, errors.Errorf("output port index %d out of range", portIndex)
	}

	out := outs[portIndex]
	if err := out.Open(); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	closer := func() {
		_ = out.Close()
		drivers.Close()
	}
	log.Printf("Opened DX7 MIDI output port %s (channel %d)", out.String(), channel+1)
	return &DX7{
		channel: channel,
		out:     out,
	}, closer, nil
}

// Send transmits a MIDI message to the DX7 output port.
func (d *DX7) Send(msg midi.Message) error {
	if !d.out.IsOpen() {
		if err := d.out.Open(); err != nil {
			return err
		}
	}
	return d.out.Send(msg.Bytes())
}

// SendSysEx transmits a raw SysEx payload.
func (d *DX7) SendSysEx(data []byte) error {
	dumpBytes(data, "sent sysex")
	return d.Send(midi.Message(data))
}

// SendVoice loads u into the DX7 edit buffer.
func (d *DX7) SendVoice(u *UnpackedVoice) error {
	if err := d.SendSysEx(SingleVoiceDump(d.channel, u)); err != nil {
		return errors.Wrap(err, "failed to send voice")
	}
	return nil
}

// RequestBulkDump asks the DX7 for all 32 voices and waits for the dump.
func (d *DX7) RequestBulkDump(inPort drivers.In) (*BulkDump, error) {
	msgCh := make(chan midi.Message, 1)

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, _ int32) {
		if len(msg) > 1 && msg[0] == sysExStart && msg[1] == yamahaID {
			select {
			case msgCh <- msg:
			default:
			}
		}
	}, midi.UseSysEx(), midi.SysExBufferSize(8192))
	if err != nil {
		return nil, errors.Wrap(err, "failed to listen for bulk dump")
	}
	defer stop()

	log.Printf("Requesting bulk dump on channel %d", d.channel+1)
	if err := d.SendSysEx(bulkDumpRequest(d.channel)); err != nil {
		return nil, errors.Wrap(err, "failed to request bulk dump")
	}

	select {
	case msg := <-msgCh:
		log.Printf("Received %d byte SysEx message", len(msg))
		dumpBytes(msg, "received sysex")
		dump, err := ParseBulkDump(msg)
		if err != nil {
			return nil, err
		}
		if sum, ok := dump.Checksum(); !ok {
			log.Printf("warning: bulk dump checksum 0x%02X does not match", sum)
		}
		return dump, nil
	case <-time.After(bulkDumpTimeout):
		log.Println("Timed out waiting for bulk dump")
	}

	return nil, errors.New("timed out waiting for bulk dump")
}

func findOutPort(nameFragment string) (int, error) {
	return findPort([]drivers.Out(midi.GetOutPorts()), "output", nameFragment)
}

func findInPort(nameFragment string) (int, error) {
	return findPort([]drivers.In(midi.GetInPorts()), "input", nameFragment)
}

// findPort returns the number of the first port whose name contains
// nameFragment, ignoring case.
func findPort[P drivers.Port](ports []P, kind, nameFragment string) (int, error) {
	if len(ports) == 0 {
		return -1, errors.Errorf("no MIDI %ss available", kind)
	}

	lower := strings.ToLower(nameFragment)
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.String()), lower) {
			return p.Number(), nil
		}
	}

	return -1, errors.Errorf("no MIDI %s contains %q", kind, nameFragment)
}

// connect opens the DX7 output port named in cfg.
func connect(cfg *Config) (*DX7, func(), error) {
	portIdx, err := findOutPort(cfg.MIDI.OutPort)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not find DX7 MIDI out port")
	}
	return OpenDX7(cfg.deviceChannel(), portIdx)
}
