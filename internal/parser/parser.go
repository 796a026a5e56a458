// Package parser turns user-supplied date, clock and birth-file text into
// engine inputs.
package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/starford/bodygraph/internal/apperr"
	"github.com/starford/bodygraph/internal/julian"
	"github.com/starford/bodygraph/internal/models"
)

var (
	dateRe  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// Date splits a YYYY-MM-DD string. Range checks are left to julian.
func Date(s string) (year, month, day int, err error) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("%w: date %q, want YYYY-MM-DD", apperr.ErrInvalidInput, s)
	}
	return atoi(m[1]), atoi(m[2]), atoi(m[3]), nil
}

// Clock splits an HH:MM string.
func Clock(s string) (hour, minute int, err error) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: time %q, want HH:MM", apperr.ErrInvalidInput, s)
	}
	return atoi(m[1]), atoi(m[2]), nil
}

// Civil combines a date, a clock and a UTC offset into a validated
// julian.CivilTime.
func Civil(date, clock string, utcOffset float64) (julian.CivilTime, error) {
	y, mo, d, err := Date(date)
	if err != nil {
		return julian.CivilTime{}, err
	}
	h, mi, err := Clock(clock)
	if err != nil {
		return julian.CivilTime{}, err
	}
	c := julian.CivilTime{Year: y, Month: mo, Day: d, Hour: h, Minute: mi, UTCOffset: utcOffset}
	if err := c.Validate(); err != nil {
		return julian.CivilTime{}, err
	}
	return c, nil
}

// ParseBirthFile reads birth data. name only selects the format: a .toml
// file is a TOML document, anything else is YAML. Markdown notes are
// accepted too, with YAML frontmatter between --- lines or TOML
// frontmatter between +++ lines.
func ParseBirthFile(name string, data []byte) (*models.ChartRequest, error) {
	var req models.ChartRequest
	var err error

	switch {
	case strings.EqualFold(filepath.Ext(name), ".toml"):
		err = toml.Unmarshal(data, &req)
	default:
		if fm, ok := frontmatter(data, "+++"); ok {
			err = toml.Unmarshal(fm, &req)
		} else if fm, ok := frontmatter(data, "---"); ok {
			err = yaml.Unmarshal(fm, &req)
		} else {
			err = yaml.Unmarshal(data, &req)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: birth file %s: %s", apperr.ErrInvalidInput, name, err.Error())
	}
	return &req, nil
}

// frontmatter returns the block between a leading delim line and the next one.
func frontmatter(data []byte, delim string) ([]byte, bool) {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, false
	}
	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, false
	}
	return rest[:idx], true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
