// Package bodygraph maps ecliptic longitudes onto the 64-gate wheel and
// derives channel and center definition, type, authority and profile.
package bodygraph

import (
	"fmt"

	"github.com/starford/bodygraph/internal/angle"
	"github.com/starford/bodygraph/internal/apperr"
)

const (
	// WheelOffset is the ecliptic longitude where the first wheel segment (gate 41) begins.
	WheelOffset = 302.0
	GateSpan    = 360.0 / 64
	LineSpan    = GateSpan / 6

	GateCount = 64
	LineCount = 6
)

// gateWheel is the traditional gate sequence along the zodiac starting at
// WheelOffset. The order is not arithmetic.
var gateWheel = [GateCount]int{
	41, 19, 13, 49, 30, 55, 37, 63, 22, 36, 25, 17, 21, 51, 42, 3,
	27, 24, 2, 23, 8, 20, 16, 35, 45, 12, 15, 52, 39, 53, 62, 56,
	31, 33, 7, 4, 29, 59, 40, 64, 47, 6, 46, 18, 48, 57, 32, 50,
	28, 44, 1, 43, 14, 34, 9, 5, 26, 11, 10, 58, 38, 54, 61, 60,
}

// wheelIndex[g] is the position of gate g on the wheel.
var wheelIndex = func() [GateCount + 1]int {
	var idx [GateCount + 1]int
	for i, g := range gateWheel {
		idx[g] = i
	}
	return idx
}()

// Activation is a gate.line placement.
type Activation struct {
	Gate int `json:"gate"`
	Line int `json:"line"`
}

func (a Activation) String() string {
	return fmt.Sprintf("%d.%d", a.Gate, a.Line)
}

// GateAt maps an ecliptic longitude to its gate and line.
func GateAt(longitude float64) Activation {
	pos := angle.Normalize(longitude - WheelOffset)
	seg := int(pos / GateSpan)
	if seg >= GateCount {
		seg = GateCount - 1
	}
	within := pos - float64(seg)*GateSpan
	line := int(within/LineSpan) + 1
	line = min(max(line, 1), LineCount)
	return Activation{Gate: gateWheel[seg], Line: line}
}

// GateStart returns the longitude at which gate begins on the wheel.
func GateStart(gate int) (float64, error) {
	if gate < 1 || gate > GateCount {
		return 0, fmt.Errorf("%w: gate %d", apperr.ErrInvalidInput, gate)
	}
	return angle.Normalize(WheelOffset + float64(wheelIndex[gate])*GateSpan), nil
}
