package api

import (
	"github.com/starford/bodygraph/internal/houses"
	"github.com/starford/bodygraph/internal/models"
)

// ChartRequest is the request body for computing a chart.
type ChartRequest = models.ChartRequest

// ChartResponse is the computed chart (aliased from the domain layer).
type ChartResponse = models.Chart

// HouseRequest is the request body for computing house cusps.
type HouseRequest = models.HouseRequest

// HouseResponse carries the angles and the twelve Placidus cusps.
type HouseResponse = houses.HouseCusps

// GateResponse describes one gate of the wheel.
type GateResponse = models.GateInfo

// CentersResponse lists the nine centers.
type CentersResponse struct {
	Centers []models.CenterInfo `json:"centers" validate:"required"`
}
