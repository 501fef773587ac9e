package devicestate

import (
	"fmt"
	"strconv"
	"strings"
)

// OperationMode is a semantic operation mode token.
type OperationMode string

// Operation modes reported and accepted by air-to-air units.
const (
	OperationModeHeat      OperationMode = "heat"
	OperationModeDry       OperationMode = "dry"
	OperationModeCool      OperationMode = "cool"
	OperationModeFanOnly   OperationMode = "fan-only"
	OperationModeHeatCool  OperationMode = "heat-cool"
	OperationModeUndefined OperationMode = "undefined"
)

// FanSpeed is a semantic fan speed token: either FanSpeedAuto or a templated
// "speed-{n}" token produced by FanSpeedOf.
type FanSpeed string

// FanSpeedAuto lets the unit pick its own fan speed.
const FanSpeedAuto FanSpeed = "auto"

const fanSpeedSlug = "speed-"

// FanSpeedOf returns the token for a numeric fan speed step.
// Step 0 is the automatic speed.
func FanSpeedOf(step int) FanSpeed {
	if step == 0 {
		return FanSpeedAuto
	}
	return FanSpeed(fmt.Sprintf("%s%d", fanSpeedSlug, step))
}

// VanePosition is a semantic vane position token. Horizontal and vertical
// vanes use distinct token sets; the VaneHorizontal*/VaneVertical* constants
// enumerate them.
type VanePosition string

// Horizontal vane positions, left to right.
const (
	VaneHorizontalAuto      VanePosition = "auto"
	VaneHorizontal1         VanePosition = "1-left"
	VaneHorizontal2         VanePosition = "2"
	VaneHorizontal3         VanePosition = "3"
	VaneHorizontal4         VanePosition = "4"
	VaneHorizontal5         VanePosition = "5-right"
	VaneHorizontalSplit     VanePosition = "split"
	VaneHorizontalSwing     VanePosition = "swing"
	VaneHorizontalUndefined VanePosition = "undefined"
)

// Vertical vane positions, top to bottom.
const (
	VaneVerticalAuto      VanePosition = "auto"
	VaneVertical1         VanePosition = "1-up"
	VaneVertical2         VanePosition = "2"
	VaneVertical3         VanePosition = "3"
	VaneVertical4         VanePosition = "4"
	VaneVertical5         VanePosition = "5-down"
	VaneVerticalSwing     VanePosition = "swing"
	VaneVerticalUndefined VanePosition = "undefined"
)

// codePair associates one raw protocol code with one semantic token.
type codePair struct {
	code  int
	token string
}

// codeTable is an ordered bidirectional association between raw protocol
// codes and semantic tokens. A single pair list backs both directions, so the
// decode/encode round trip holds for every entry by construction.
//
// Decoding is total: codes outside the table map to the undefined sentinel,
// since firmware revisions introduce codes the table has never seen.
// Encoding is strict: a token outside the table fails with an InvalidValue
// error, since guessing a numeric code would write garbage to the device.
type codeTable struct {
	domain    string // used in error messages
	undefined string
	pairs     []codePair
}

func (t *codeTable) decode(code int) string {
	for _, p := range t.pairs {
		if p.code == code {
			return p.token
		}
	}
	return t.undefined
}

func (t *codeTable) encode(token string) (int, error) {
	for _, p := range t.pairs {
		if p.token == token {
			return p.code, nil
		}
	}
	return 0, newInvalidValue("invalid %s [%s]", t.domain, token)
}

var operationModeTable = codeTable{
	domain:    "operation mode",
	undefined: string(OperationModeUndefined),
	pairs: []codePair{
		{1, string(OperationModeHeat)},
		{2, string(OperationModeDry)},
		{3, string(OperationModeCool)},
		{7, string(OperationModeFanOnly)},
		{8, string(OperationModeHeatCool)},
	},
}

var vaneHorizontalTable = codeTable{
	domain:    "horizontal vane position",
	undefined: string(VaneHorizontalUndefined),
	pairs: []codePair{
		{0, string(VaneHorizontalAuto)},
		{1, string(VaneHorizontal1)},
		{2, string(VaneHorizontal2)},
		{3, string(VaneHorizontal3)},
		{4, string(VaneHorizontal4)},
		{5, string(VaneHorizontal5)},
		{8, string(VaneHorizontalSplit)},
		{12, string(VaneHorizontalSwing)},
	},
}

var vaneVerticalTable = codeTable{
	domain:    "vertical vane position",
	undefined: string(VaneVerticalUndefined),
	pairs: []codePair{
		{0, string(VaneVerticalAuto)},
		{1, string(VaneVertical1)},
		{2, string(VaneVertical2)},
		{3, string(VaneVertical3)},
		{4, string(VaneVertical4)},
		{5, string(VaneVertical5)},
		{7, string(VaneVerticalSwing)},
	},
}

// decodeFanSpeed maps a raw fan speed code to its token. Code 0 is the
// automatic speed; positive codes become templated "speed-{n}" tokens, so
// decoding never fails regardless of how many speeds the unit reports.
func decodeFanSpeed(code int) FanSpeed {
	return FanSpeedOf(code)
}

// encodeFanSpeed parses a fan speed token back to its raw code. Accepts the
// literal "auto" token or a "speed-{n}" token with a non-negative integer
// suffix; anything else fails with an InvalidValue error.
func encodeFanSpeed(speed FanSpeed) (int, error) {
	if speed == FanSpeedAuto {
		return 0, nil
	}
	suffix, ok := strings.CutPrefix(string(speed), fanSpeedSlug)
	if !ok {
		return 0, newInvalidValue("invalid fan speed [%s]", speed)
	}
	step, err := strconv.Atoi(suffix)
	if err != nil || step < 0 {
		return 0, newInvalidValue("invalid fan speed [%s]", speed)
	}
	return step, nil
}
