package main

import (
	"strings"

	"github.com/pkg/errors"
)

type Operator struct {
	EGRates     [4]byte `json:"eg_rates" yaml:"eg_rates"`
	EGLevels    [4]byte `json:"eg_levels" yaml:"eg_levels"`
	BreakPoint  byte    `json:"break_point" yaml:"break_point"`
	LeftDepth   byte    `json:"left_depth" yaml:"left_depth"`
	RightDepth  byte    `json:"right_depth" yaml:"right_depth"`
	LeftCurve   byte    `json:"left_curve" yaml:"left_curve"`
	RightCurve  byte    `json:"right_curve" yaml:"right_curve"`
	RateScaling byte    `json:"rate_scaling" yaml:"rate_scaling"`
	AmpModSens  byte    `json:"amp_mod_sens" yaml:"amp_mod_sens"`
	KeyVelSens  byte    `json:"key_vel_sens" yaml:"key_vel_sens"`
	OutputLevel byte    `json:"output_level" yaml:"output_level"`
	OscMode     byte    `json:"osc_mode" yaml:"osc_mode"` // 0 ratio, 1 fixed
	FreqCoarse  byte    `json:"freq_coarse" yaml:"freq_coarse"`
	FreqFine    byte    `json:"freq_fine" yaml:"freq_fine"`
	Detune      byte    `json:"detune" yaml:"detune"` // 7 is centre
	Enabled     bool    `json:"enabled" yaml:"enabled"`
}

type LFO struct {
	Speed         byte `json:"speed" yaml:"speed"`
	Delay         byte `json:"delay" yaml:"delay"`
	PitchModDepth byte `json:"pitch_mod_depth" yaml:"pitch_mod_depth"`
	AmpModDepth   byte `json:"amp_mod_depth" yaml:"amp_mod_depth"`
	KeySync       byte `json:"key_sync" yaml:"key_sync"`
	Wave          byte `json:"wave" yaml:"wave"`
}

// Voice is the named form of an UnpackedVoice. Operators are in panel order,
// Operators[0] is operator 1.
type Voice struct {
	Number        int         `json:"number,omitempty" yaml:"number,omitempty"`
	Name          string      `json:"name" yaml:"name"`
	Operators     [6]Operator `json:"operators" yaml:"operators"`
	PitchEGRates  [4]byte     `json:"pitch_eg_rates" yaml:"pitch_eg_rates"`
	PitchEGLevels [4]byte     `json:"pitch_eg_levels" yaml:"pitch_eg_levels"`
	Algorithm     byte        `json:"algorithm" yaml:"algorithm"` // 0-31, panel shows 1-32
	Feedback      byte        `json:"feedback" yaml:"feedback"`
	OscKeySync    byte        `json:"osc_key_sync" yaml:"osc_key_sync"`
	LFO           LFO         `json:"lfo" yaml:"lfo"`
	PitchModSens  byte        `json:"pitch_mod_sens" yaml:"pitch_mod_sens"`
	Transpose     byte        `json:"transpose" yaml:"transpose"` // 24 is C3
}

// Index mappings of the global parameters in the 156-byte VCED array.
const (
	pitchEGRateIdx  = upPitchEG
	pitchEGLevelIdx = upPitchEG + 4
	algorithmIdx    = 134
	feedbackIdx     = upFeedback
	oscSyncIdx      = upOscSync
	lfoSpeedIdx     = upLFO
	lfoDelayIdx     = upLFO + 1
	lfoPMDIdx       = upLFO + 2
	lfoAMDIdx       = upLFO + 3
	lfoSyncIdx      = upLFOSync
	lfoWaveIdx      = upLFOWave
	pitchModSensIdx = upPitchMod
	transposeIdx    = upTranspose
	nameIdx         = upName
	nameLen         = pkNameLen
)

// operatorBase is the VCED offset of operator n (1-6). Operator 6 is stored
// first.
func operatorBase(n int) int {
	return (numOperators - n) * unpackedOpSize
}

// NewVoice maps u onto named fields. The name is taken from the name
// parameters.
func NewVoice(u *UnpackedVoice) *Voice {
	v := &Voice{}

	for i := range v.Operators {
		base := operatorBase(i + 1)
		op := &v.Operators[i]
		copy(op.EGRates[:], u[base:base+4])
		copy(op.EGLevels[:], u[base+4:base+8])
		op.BreakPoint = u[base+8]
		op.LeftDepth = u[base+9]
		op.RightDepth = u[base+10]
		op.LeftCurve = u[base+upOpLeftCurve]
		op.RightCurve = u[base+upOpRightCurve]
		op.RateScaling = u[base+upOpRateScale]
		op.AmpModSens = u[base+upOpAmpModSens]
		op.KeyVelSens = u[base+upOpKeyVelSens]
		op.OutputLevel = u[base+upOpOutLevel]
		op.OscMode = u[base+upOpOscMode]
		op.FreqCoarse = u[base+upOpCoarse]
		op.FreqFine = u[base+upOpFine]
		op.Detune = u[base+upOpDetune]
		// Bit 0 of the mask is operator 6.
		op.Enabled = u[operatorMaskIdx]&(1<<(numOperators-1-i)) != 0
	}

	copy(v.PitchEGRates[:], u[pitchEGRateIdx:pitchEGRateIdx+4])
	copy(v.PitchEGLevels[:], u[pitchEGLevelIdx:pitchEGLevelIdx+4])
	v.Algorithm = u[algorithmIdx]
	v.Feedback = u[feedbackIdx]
	v.OscKeySync = u[oscSyncIdx]
	v.LFO = LFO{
		Speed:         u[lfoSpeedIdx],
		Delay:         u[lfoDelayIdx],
		PitchModDepth: u[lfoPMDIdx],
		AmpModDepth:   u[lfoAMDIdx],
		KeySync:       u[lfoSyncIdx],
		Wave:          u[lfoWaveIdx],
	}
	v.PitchModSens = u[pitchModSensIdx]
	v.Transpose = u[transposeIdx]
	v.Name = strings.TrimFunc(string(u[nameIdx:nameIdx+nameLen]), isNameSpace)

	return v
}

// Params maps the voice back onto VCED order. Out of range values are
// clamped; names longer than 10 characters are an error.
func (v *Voice) Params() (UnpackedVoice, error) {
	var u UnpackedVoice

	if len(v.Name) > nameLen {
		return u, errors.Errorf("voice name %q longer than %d characters", v.Name, nameLen)
	}
	for i := 0; i < len(v.Name); i++ {
		if v.Name[i] >= 0x80 {
			return u, &EncodingError{Offset: i, Byte: v.Name[i]}
		}
	}

	for i, op := range v.Operators {
		base := operatorBase(i + 1)
		copy(u[base:base+4], op.EGRates[:])
		copy(u[base+4:base+8], op.EGLevels[:])
		u[base+8] = op.BreakPoint
		u[base+9] = op.LeftDepth
		u[base+10] = op.RightDepth
		u[base+upOpLeftCurve] = op.LeftCurve
		u[base+upOpRightCurve] = op.RightCurve
		u[base+upOpRateScale] = op.RateScaling
		u[base+upOpAmpModSens] = op.AmpModSens
		u[base+upOpKeyVelSens] = op.KeyVelSens
		u[base+upOpOutLevel] = op.OutputLevel
		u[base+upOpOscMode] = op.OscMode
		u[base+upOpCoarse] = op.FreqCoarse
		u[base+upOpFine] = op.FreqFine
		u[base+upOpDetune] = op.Detune
		if op.Enabled {
			u[operatorMaskIdx] |= 1 << (numOperators - 1 - i)
		}
	}

	copy(u[pitchEGRateIdx:pitchEGRateIdx+4], v.PitchEGRates[:])
	copy(u[pitchEGLevelIdx:pitchEGLevelIdx+4], v.PitchEGLevels[:])
	u[algorithmIdx] = v.Algorithm
	u[feedbackIdx] = v.Feedback
	u[oscSyncIdx] = v.OscKeySync
	u[lfoSpeedIdx] = v.LFO.Speed
	u[lfoDelayIdx] = v.LFO.Delay
	u[lfoPMDIdx] = v.LFO.PitchModDepth
	u[lfoAMDIdx] = v.LFO.AmpModDepth
	u[lfoSyncIdx] = v.LFO.KeySync
	u[lfoWaveIdx] = v.LFO.Wave
	u[pitchModSensIdx] = v.PitchModSens
	u[transposeIdx] = v.Transpose

	name := u[nameIdx : nameIdx+nameLen]
	for i := range name {
		name[i] = ' '
	}
	copy(name, v.Name)

	Clamp(&u)
	return u, nil
}
