package main

const (
	PackedVoiceSize   = 128 // One voice record inside a 32-voice bulk dump
	UnpackedVoiceSize = 156 // VCED parameters 0-154 plus the operator on/off byte

	packedOpSize   = 17
	unpackedOpSize = 21
	numOperators   = 6

	// operatorMaskIdx is not carried in the packed format; it is always
	// written as opMaskAllOn.
	operatorMaskIdx = 155
	opMaskAllOn     = 0x3F
)

// PackedVoice is a single 128-byte voice as stored in a bulk dump.
//
//	    | 7 | 6 | 5 | 4 | 3 | 2 | 1 | 0 |
//	+11 | - | - | - | - |  RC   |  LC   |   op curves
//	+12 | - |    DET        |    RS     |   op detune / rate scaling
//	+13 | - | - | - |  KVS  |   AMS     |   op key vel sens / amp mod sens
//	+15 | - |     FC            | M |       op freq coarse / osc mode
//	111 | - | - | - | - |OKS|    FB     |   osc key sync / feedback
//	116 | - |   PMS     |   LFW     |LKS|   pitch mod sens / lfo wave / lfo sync
type PackedVoice [PackedVoiceSize]byte

// UnpackedVoice holds one byte per synthesizer parameter in VCED order,
// operator 6 first.
type UnpackedVoice [UnpackedVoiceSize]byte

// Packed voice offsets. Operator offsets are relative to op*packedOpSize.
const (
	pkOpRawLen    = 11
	pkOpCurves    = 11
	pkOpDetuneRS  = 12
	pkOpKVSAMS    = 13
	pkOpOutLevel  = 14
	pkOpCoarseOsc = 15
	pkOpFine      = 16

	pkPitchEG     = 102
	pkPitchEGLen  = 9 // pitch EG rates and levels, then algorithm
	pkSyncFB      = 111
	pkLFO         = 112
	pkLFOLen      = 4
	pkLFOSyncWave = 116
	pkTail        = 117
	pkTailLen     = 11 // transpose, then the 10 name bytes
	pkName        = 118
	pkNameLen     = 10
)

// Unpacked voice offsets. Operator offsets are relative to op*unpackedOpSize.
const (
	upOpLeftCurve  = 11
	upOpRightCurve = 12
	upOpRateScale  = 13
	upOpAmpModSens = 14
	upOpKeyVelSens = 15
	upOpOutLevel   = 16
	upOpOscMode    = 17
	upOpCoarse     = 18
	upOpFine       = 19
	upOpDetune     = 20

	upPitchEG   = 126
	upFeedback  = 135
	upOscSync   = 136
	upLFO       = 137
	upLFOSync   = 141
	upLFOWave   = 142
	upPitchMod  = 143
	upTail      = 144
	upTranspose = 144
	upName      = 145
)

// Bit masks and shifts for the shared bytes.
const (
	curveMask       = 0x03
	rightCurveShift = 2

	rateScaleMask = 0x07
	detuneShift   = 3

	ampModSensMask = 0x03
	keyVelShift    = 2

	oscModeMask  = 0x01
	coarseShift  = 1
	feedbackMask = 0x07
	oscSyncShift = 3

	lfoSyncMask   = 0x01
	lfoWaveShift  = 1
	lfoWaveMask   = 0x07
	pitchModShift = 4
)

// paramMax is the inclusive upper bound of every unpacked parameter.
var paramMax = [UnpackedVoiceSize]byte{
	99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, // op6
	3, 3, 7, 3, 7, 99, 1, 31, 99, 14,
	99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, // op5
	3, 3, 7, 3, 7, 99, 1, 31, 99, 14,
	99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, // op4
	3, 3, 7, 3, 7, 99, 1, 31, 99, 14,
	99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, // op3
	3, 3, 7, 3, 7, 99, 1, 31, 99, 14,
	99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, // op2
	3, 3, 7, 3, 7, 99, 1, 31, 99, 14,
	99, 99, 99, 99, 99, 99, 99, 99, 99, 99, 99, // op1
	3, 3, 7, 3, 7, 99, 1, 31, 99, 14,
	99, 99, 99, 99, 99, 99, 99, 99, // pitch EG rates and levels
	31, 7, 1, 99, 99, 99, 99, 1, 5, 7, 48, // algorithm .. transpose
	126, 126, 126, 126, 126, 126, 126, 126, 126, 126, // name
	127, // operator on/off
}

// maxParam returns the largest valid value of unpacked parameter i.
func maxParam(i int) byte {
	return paramMax[i]
}

// Unpack expands a packed voice into its VCED parameters and clamps every
// parameter into range. Any input produces a valid voice.
func Unpack(p *PackedVoice) UnpackedVoice {
	var u UnpackedVoice

	for op := 0; op < numOperators; op++ {
		pk := p[op*packedOpSize : (op+1)*packedOpSize]
		up := u[op*unpackedOpSize : (op+1)*unpackedOpSize]

		// EG rates and levels, breakpoint, left and right depth
		copy(up[:pkOpRawLen], pk[:pkOpRawLen])

		curves := pk[pkOpCurves]
		up[upOpLeftCurve] = curves & curveMask
		up[upOpRightCurve] = (curves >> rightCurveShift) & curveMask

		detuneRS := pk[pkOpDetuneRS]
		up[upOpRateScale] = detuneRS & rateScaleMask
		up[upOpDetune] = detuneRS >> detuneShift

		kvsAMS := pk[pkOpKVSAMS]
		up[upOpAmpModSens] = kvsAMS & ampModSensMask
		up[upOpKeyVelSens] = kvsAMS >> keyVelShift

		up[upOpOutLevel] = pk[pkOpOutLevel]

		coarseMode := pk[pkOpCoarseOsc]
		up[upOpOscMode] = coarseMode & oscModeMask
		up[upOpCoarse] = coarseMode >> coarseShift

		up[upOpFine] = pk[pkOpFine]
	}

	copy(u[upPitchEG:upPitchEG+pkPitchEGLen], p[pkPitchEG:pkPitchEG+pkPitchEGLen])

	syncFB := p[pkSyncFB]
	u[upFeedback] = syncFB & feedbackMask
	u[upOscSync] = syncFB >> oscSyncShift

	copy(u[upLFO:upLFO+pkLFOLen], p[pkLFO:pkLFO+pkLFOLen])

	lfo := p[pkLFOSyncWave]
	u[upLFOSync] = lfo & lfoSyncMask
	u[upLFOWave] = (lfo >> lfoWaveShift) & lfoWaveMask
	u[upPitchMod] = lfo >> pitchModShift

	copy(u[upTail:upTail+pkTailLen], p[pkTail:pkTail+pkTailLen])

	u[operatorMaskIdx] = opMaskAllOn

	Clamp(&u)
	return u
}

// Clamp limits every parameter of u to its maximum. Clamping a clamped
// voice leaves it unchanged.
func Clamp(u *UnpackedVoice) {
	for i, v := range u {
		if hi := maxParam(i); v > hi {
			u[i] = hi
		}
	}
}
