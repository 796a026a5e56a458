package bodygraph

import (
	"fmt"

	"github.com/starford/bodygraph/internal/apperr"
)

// Center is one of the nine bodygraph centers.
type Center string

const (
	Head        Center = "Head"
	Ajna        Center = "Ajna"
	Throat      Center = "Throat"
	G           Center = "G"
	Heart       Center = "Heart" // Will / Ego
	Spleen      Center = "Spleen"
	SolarPlexus Center = "SolarPlexus"
	Sacral      Center = "Sacral"
	Root        Center = "Root"
)

// Centers lists the nine centers top to bottom.
var Centers = []Center{Head, Ajna, Throat, G, Heart, Spleen, SolarPlexus, Sacral, Root}

var motors = map[Center]bool{Heart: true, SolarPlexus: true, Sacral: true, Root: true}

// IsMotor reports whether c is one of the four motor centers.
func IsMotor(c Center) bool { return motors[c] }

var centerGates = map[Center][]int{
	Head:        {64, 61, 63},
	Ajna:        {47, 24, 4, 17, 43, 11},
	Throat:      {62, 23, 56, 35, 12, 45, 33, 8, 31, 20, 16},
	G:           {1, 13, 25, 46, 2, 15, 10, 7},
	Heart:       {21, 40, 26, 51},
	Spleen:      {48, 57, 44, 50, 32, 28, 18},
	SolarPlexus: {36, 22, 37, 6, 49, 55, 30},
	Sacral:      {5, 14, 29, 59, 9, 3, 42, 27, 34},
	Root:        {58, 38, 54, 53, 60, 52, 19, 39, 41},
}

// Channel is an unordered gate pair, stored low gate first.
type Channel [2]int

// channels is the fixed channel table. Gates 10, 20, 34 and 57 take part in
// three channels each; every other gate in exactly one.
var channels = []Channel{
	{1, 8}, {2, 14}, {3, 60}, {4, 63}, {5, 15}, {6, 59},
	{7, 31}, {9, 52}, {10, 20}, {10, 34}, {10, 57}, {11, 56},
	{12, 22}, {13, 33}, {16, 48}, {17, 62}, {18, 58}, {19, 49},
	{20, 34}, {20, 57}, {21, 45}, {23, 43}, {24, 61}, {25, 51},
	{26, 44}, {27, 50}, {28, 38}, {29, 46}, {30, 41}, {32, 54},
	{34, 57}, {35, 36}, {37, 40}, {39, 55}, {42, 53}, {47, 64},
}

var gateCenter = func() map[int]Center {
	m := make(map[int]Center, GateCount)
	for c, gates := range centerGates {
		for _, g := range gates {
			m[g] = c
		}
	}
	return m
}()

// CenterOf returns the center owning gate.
func CenterOf(gate int) (Center, error) {
	c, ok := gateCenter[gate]
	if !ok {
		return "", fmt.Errorf("%w: gate %d has no center", apperr.ErrInternal, gate)
	}
	return c, nil
}

// GatesOf returns a copy of the gates owned by c.
func GatesOf(c Center) []int {
	return append([]int(nil), centerGates[c]...)
}

// Channels returns a copy of the channel table.
func Channels() []Channel {
	return append([]Channel(nil), channels...)
}

// Partners returns the gates that complete a channel with gate.
func Partners(gate int) []int {
	var out []int
	for _, ch := range channels {
		switch gate {
		case ch[0]:
			out = append(out, ch[1])
		case ch[1]:
			out = append(out, ch[0])
		}
	}
	return out
}

// Centers returns the two centers a channel joins.
func (ch Channel) Centers() (Center, Center, error) {
	a, err := CenterOf(ch[0])
	if err != nil {
		return "", "", err
	}
	b, err := CenterOf(ch[1])
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

func (ch Channel) String() string {
	return fmt.Sprintf("%d-%d", ch[0], ch[1])
}
