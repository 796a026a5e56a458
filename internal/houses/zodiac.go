package houses

import "github.com/starford/bodygraph/internal/angle"

// Sign is a tropical zodiac sign.
type Sign string

// Signs in ecliptic order from 0° Aries.
var Signs = [12]Sign{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Placement is a longitude expressed as sign and degree within it.
type Placement struct {
	Sign   Sign    `json:"sign"`
	Degree float64 `json:"degree"`
}

// SignOf splits a longitude into its sign and degree [0,30).
func SignOf(longitude float64) Placement {
	lon := angle.Normalize(longitude)
	idx := min(int(lon/30), 11)
	return Placement{Sign: Signs[idx], Degree: lon - float64(idx)*30}
}
