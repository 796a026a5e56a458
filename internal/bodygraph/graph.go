package bodygraph

import (
	"fmt"
	"slices"

	"github.com/starford/bodygraph/internal/apperr"
)

// Definition is the channel/center definition derived from a gate set.
type Definition struct {
	Gates     []int     `json:"allGates"`
	Channels  []Channel `json:"definedChannels"`
	Defined   []Center  `json:"definedCenters"`
	Undefined []Center  `json:"undefinedCenters"`

	defined   map[Center]bool
	adjacency map[Center]map[Center]struct{}
}

// Analyze builds the definition from the activated gates. Duplicates are
// removed and the result is sorted. A gate outside 1..64 is a table error.
func Analyze(gates []int) (*Definition, error) {
	active := make(map[int]bool, len(gates))
	for _, g := range gates {
		if g < 1 || g > GateCount {
			return nil, fmt.Errorf("%w: gate %d outside wheel", apperr.ErrInternal, g)
		}
		active[g] = true
	}

	d := &Definition{
		Gates:     make([]int, 0, len(active)),
		Channels:  []Channel{},
		Defined:   []Center{},
		Undefined: []Center{},
		defined:   make(map[Center]bool),
		adjacency: make(map[Center]map[Center]struct{}),
	}
	for g := range active {
		d.Gates = append(d.Gates, g)
	}
	slices.Sort(d.Gates)

	for _, ch := range channels {
		if !active[ch[0]] || !active[ch[1]] {
			continue
		}
		a, b, err := ch.Centers()
		if err != nil {
			return nil, err
		}
		d.Channels = append(d.Channels, ch)
		d.defined[a] = true
		d.defined[b] = true
		if a != b {
			d.link(a, b)
			d.link(b, a)
		}
	}

	for _, c := range Centers {
		if d.defined[c] {
			d.Defined = append(d.Defined, c)
		} else {
			d.Undefined = append(d.Undefined, c)
		}
	}
	return d, nil
}

func (d *Definition) link(from, to Center) {
	set, ok := d.adjacency[from]
	if !ok {
		set = make(map[Center]struct{})
		d.adjacency[from] = set
	}
	set[to] = struct{}{}
}

// IsDefined reports whether c is defined.
func (d *Definition) IsDefined(c Center) bool {
	return d.defined[c]
}

// Adjacent returns the centers directly joined to c by a defined channel,
// in Centers order.
func (d *Definition) Adjacent(c Center) []Center {
	var out []Center
	for _, n := range Centers {
		if _, ok := d.adjacency[c][n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Connected reports whether a path of defined channels joins a and b.
// A center is always connected to itself.
func (d *Definition) Connected(a, b Center) bool {
	if a == b {
		return true
	}
	visited := map[Center]bool{a: true}
	queue := []Center{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range d.adjacency[cur] {
			if next == b {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// Components groups the defined centers into connected islands, each in
// Centers order.
func (d *Definition) Components() [][]Center {
	seen := make(map[Center]bool)
	var out [][]Center
	for _, c := range d.Defined {
		if seen[c] {
			continue
		}
		var group []Center
		for _, other := range d.Defined {
			if !seen[other] && d.Connected(c, other) {
				seen[other] = true
				group = append(group, other)
			}
		}
		out = append(out, group)
	}
	return out
}
