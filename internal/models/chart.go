// Package models defines the request and response types shared by the
// HTTP API, the MCP server and the CLI.
package models

import (
	"fmt"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/bodygraph/internal/apperr"
	"github.com/starford/bodygraph/internal/bodygraph"
	"github.com/starford/bodygraph/internal/ephemeris"
	"github.com/starford/bodygraph/internal/houses"
	"github.com/starford/bodygraph/internal/julian"
)

// Input formats.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ChartRequest is the birth data for one chart.
type ChartRequest struct {
	BirthDate string   `json:"birthDate" yaml:"birthDate" toml:"birthDate"`
	BirthTime string   `json:"birthTime,omitempty" yaml:"birthTime" toml:"birthTime"`
	UTCOffset *float64 `json:"utcOffset,omitempty" yaml:"utcOffset" toml:"utcOffset"`
	Latitude  *float64 `json:"latitude,omitempty" yaml:"latitude" toml:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" yaml:"longitude" toml:"longitude"`
}

// WantsHouses reports whether a location was supplied.
func (r *ChartRequest) WantsHouses() bool {
	return r.Latitude != nil || r.Longitude != nil
}

// Validate checks field presence and formats. A birth time is mandatory
// once a location is given, because houses depend on the exact moment.
func (r *ChartRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.BirthDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&r.BirthTime,
			validation.When(r.WantsHouses(), validation.Required.Error("is required when latitude/longitude are given")),
			validation.Date(ClockLayout)),
		validation.Field(&r.UTCOffset, validation.Min(-14.0), validation.Max(14.0)),
		validation.Field(&r.Latitude,
			validation.When(r.Longitude != nil, validation.NotNil),
			validation.Min(-90.0).Exclusive(), validation.Max(90.0).Exclusive()),
		validation.Field(&r.Longitude,
			validation.When(r.Latitude != nil, validation.NotNil),
			validation.Min(-180.0), validation.Max(180.0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrInvalidInput, err.Error())
	}
	return nil
}

// BodyActivation is one body's placement on the gate wheel.
type BodyActivation struct {
	bodygraph.Activation
	Longitude float64 `json:"longitude"`
	houses.Placement
}

// Chart is the computed chart. It is rebuilt from the birth data on every
// request and never mutated afterwards.
type Chart struct {
	ChartID          string                            `json:"chartId"`
	BirthJDE         float64                           `json:"birthJde"`
	DesignJDE        float64                           `json:"designJde"`
	DesignDate       string                            `json:"designDate"`
	Personality      map[ephemeris.Body]BodyActivation `json:"personality"`
	Design           map[ephemeris.Body]BodyActivation `json:"design"`
	AllGates         []int                             `json:"allGates"`
	DefinedChannels  []bodygraph.Channel               `json:"definedChannels"`
	DefinedCenters   []bodygraph.Center                `json:"definedCenters"`
	UndefinedCenters []bodygraph.Center                `json:"undefinedCenters"`
	IncarnationCross string                            `json:"incarnationCross"`
	bodygraph.Archetype
	Houses       *houses.HouseCusps     `json:"houses,omitempty"`
	PlanetHouses map[ephemeris.Body]int `json:"planetHouses,omitempty"`
}

// HouseRequest asks for Placidus cusps at either an explicit JDE or a
// civil date and time.
type HouseRequest struct {
	JDE       *float64 `json:"jde,omitempty"`
	Date      string   `json:"date,omitempty"`
	Time      string   `json:"time,omitempty"`
	UTCOffset *float64 `json:"utcOffset,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Validate checks that the moment and the location are both present.
func (r *HouseRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.JDE, validation.By(jdeInRange)),
		validation.Field(&r.Date,
			validation.When(r.JDE == nil, validation.Required.Error("is required when jde is absent")),
			validation.Date(DateLayout)),
		validation.Field(&r.Time,
			validation.When(r.JDE == nil, validation.Required.Error("is required when jde is absent")),
			validation.Date(ClockLayout)),
		validation.Field(&r.UTCOffset, validation.Min(-14.0), validation.Max(14.0)),
		validation.Field(&r.Latitude, validation.NotNil, validation.Min(-90.0).Exclusive(), validation.Max(90.0).Exclusive()),
		validation.Field(&r.Longitude, validation.NotNil, validation.Min(-180.0), validation.Max(180.0)),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrInvalidInput, err.Error())
	}
	return nil
}

// jdeInRange keeps a raw JDE inside the supported calendar range. Zero is
// checked too, unlike the threshold rules which skip empty values.
func jdeInRange(value any) error {
	jde, ok := value.(*float64)
	if !ok || jde == nil {
		return nil
	}
	if math.IsNaN(*jde) || *jde < julian.MinJDE || *jde >= julian.MaxJDE {
		return validation.NewError("validation_jde_range",
			fmt.Sprintf("must be between %.1f and %.1f", julian.MinJDE, julian.MaxJDE))
	}
	return nil
}

// GateInfo describes one gate of the wheel.
type GateInfo struct {
	Gate     int              `json:"gate"`
	Center   bodygraph.Center `json:"center"`
	Start    float64          `json:"start"`
	End      float64          `json:"end"`
	Partners []int            `json:"partners"`
}

// CenterInfo describes one center.
type CenterInfo struct {
	Center bodygraph.Center `json:"center"`
	Motor  bool             `json:"motor"`
	Gates  []int            `json:"gates"`
}
