package bodygraph

import "fmt"

// Type is the energy type derived from center definition.
type Type string

const (
	Generator            Type = "Generator"
	ManifestingGenerator Type = "Manifesting Generator"
	Manifestor           Type = "Manifestor"
	Projector            Type = "Projector"
	Reflector            Type = "Reflector"
)

// Authority is the inner decision-making authority.
type Authority string

const (
	Emotional     Authority = "Emotional"
	SacralAuth    Authority = "Sacral"
	Splenic       Authority = "Splenic"
	Ego           Authority = "Ego"
	SelfProjected Authority = "Self-Projected"
	Mental        Authority = "Mental"
	Lunar         Authority = "Lunar"
)

// Kind describes how many separate islands the defined centers form.
type Kind string

const (
	NoDefinition   Kind = "No Definition"
	SingleDef      Kind = "Single Definition"
	SplitDef       Kind = "Split Definition"
	TripleSplitDef Kind = "Triple Split Definition"
	QuadSplitDef   Kind = "Quadruple Split Definition"
)

// Themes are the strategy, signature and not-self theme of a type.
type Themes struct {
	Strategy  string `json:"strategy"`
	Signature string `json:"signature"`
	NotSelf   string `json:"notSelf"`
}

var typeThemes = map[Type]Themes{
	Generator:            {"To Respond", "Satisfaction", "Frustration"},
	ManifestingGenerator: {"To Respond, then Inform", "Satisfaction", "Frustration"},
	Manifestor:           {"To Inform", "Peace", "Anger"},
	Projector:            {"Wait for the Invitation", "Success", "Bitterness"},
	Reflector:            {"Wait a Lunar Cycle", "Surprise", "Disappointment"},
}

// authorityOrder is checked top to bottom; the first defined center wins.
var authorityOrder = []struct {
	center    Center
	authority Authority
}{
	{SolarPlexus, Emotional},
	{Sacral, SacralAuth},
	{Spleen, Splenic},
	{Heart, Ego},
	{G, SelfProjected},
	{Ajna, Mental},
}

// Archetype is the classification of one chart.
type Archetype struct {
	Type       Type      `json:"type"`
	Authority  Authority `json:"authority"`
	Profile    string    `json:"profile"`
	Definition Kind      `json:"definition"`
	Themes
}

// Classify derives type, authority, profile and themes. The profile lines
// are the personality and design Sun lines.
func Classify(d *Definition, personalitySunLine, designSunLine int) Archetype {
	t := TypeOf(d)
	return Archetype{
		Type:       t,
		Authority:  AuthorityOf(d),
		Profile:    Profile(personalitySunLine, designSunLine),
		Definition: KindOf(d),
		Themes:     typeThemes[t],
	}
}

// TypeOf applies the type decision tree.
func TypeOf(d *Definition) Type {
	if len(d.Defined) == 0 {
		return Reflector
	}
	motorToThroat := d.motorToThroat()
	if d.IsDefined(Sacral) {
		if motorToThroat {
			return ManifestingGenerator
		}
		return Generator
	}
	if motorToThroat {
		return Manifestor
	}
	return Projector
}

// motorToThroat reports whether a defined motor reaches a defined Throat.
func (d *Definition) motorToThroat() bool {
	if !d.IsDefined(Throat) {
		return false
	}
	for _, c := range Centers {
		if IsMotor(c) && d.IsDefined(c) && d.Connected(c, Throat) {
			return true
		}
	}
	return false
}

// AuthorityOf returns the highest-priority defined authority center, or
// Lunar when none is defined.
func AuthorityOf(d *Definition) Authority {
	for _, a := range authorityOrder {
		if d.IsDefined(a.center) {
			return a.authority
		}
	}
	return Lunar
}

// KindOf counts the islands of defined centers.
func KindOf(d *Definition) Kind {
	switch len(d.Components()) {
	case 0:
		return NoDefinition
	case 1:
		return SingleDef
	case 2:
		return SplitDef
	case 3:
		return TripleSplitDef
	default:
		return QuadSplitDef
	}
}

// Profile formats the two Sun lines as "P/D".
func Profile(personalityLine, designLine int) string {
	return fmt.Sprintf("%d/%d", personalityLine, designLine)
}

// ThemesOf returns the strategy, signature and not-self of t.
func ThemesOf(t Type) Themes {
	return typeThemes[t]
}
