package mcpserver

// RequestFormatContract describes the birth-data conventions LLM consumers
// should follow when calling the chart tools.
const RequestFormatContract = `# Bodygraph Request Format

All chart tools take civil birth data and compute everything else.

## Fields

| Field       | Format       | Notes                                                      |
|-------------|--------------|------------------------------------------------------------|
| birthDate   | YYYY-MM-DD   | REQUIRED. Gregorian calendar, years 1583-3000.             |
| birthTime   | HH:MM        | 24-hour local clock. Defaults to 12:00 when unknown.       |
| utcOffset   | hours        | Local offset from UTC, e.g. -5 or 5.5. Range -14..14.      |
| latitude    | degrees      | North positive. Strictly between -90 and 90.               |
| longitude   | degrees      | East positive. Range -180..180.                            |

## Rules

1. **Location is all or nothing.** Send both latitude and longitude, or neither.
2. **A location needs a time.** Houses depend on the exact moment, so birthTime is
   required as soon as a location is given.
3. **Offsets are not time zones.** Resolve daylight saving yourself and send the
   offset that was in effect at the birth moment.
4. **Quote dates and times** in birth files (` + "`" + `birthDate = "1990-01-01"` + "`" + ` in TOML)
   so they are read as text.
5. **Unknown birth time** gives a usable chart, but the Moon can be off by up to
   one gate and the profile line may change near a boundary.

## Output

- ` + "`" + `personality` + "`" + ` and ` + "`" + `design` + "`" + ` map each of the 13 bodies (Sun, Earth, Moon,
  NorthNode, SouthNode, Mercury ... Pluto) to ` + "`" + `{gate, line, longitude, sign, degree}` + "`" + `.
- ` + "`" + `designDate` + "`" + ` is the UTC date when the Sun stood 88 degrees behind its birth position.
- ` + "`" + `houses` + "`" + ` is present only when a location was sent. When ` + "`" + `houses.circumpolar` + "`" + ` is
  true the place is too close to a pole for Placidus and the listed cusps are degenerate.

## Example

` + "```" + `json
{"birthDate": "1990-01-01", "birthTime": "14:30", "utcOffset": 1, "latitude": 52.52, "longitude": 13.40}
` + "```" + `
`
