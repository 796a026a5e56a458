package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/bodygraph/internal/chartservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *chartservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *chartservice.Service) *Handler {
	return &Handler{svc: svc}
}

// Chart handles POST /api/chart.
//
//	@Summary		Compute a chart from birth data
//	@Tags			chart
//	@Accept			json
//	@Produce		json
//	@Param			If-None-Match	header	string			false	"chartId of a cached response"
//	@Param			body			body	ChartRequest	true	"Birth data"
//	@Success		200		{object}	ChartResponse
//	@Success		304
//	@Failure		400		{object}	errResponse
//	@Router			/chart [post]
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	var req ChartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	chart, err := h.svc.Chart(r.Context(), req)
	if err != nil {
		writeServiceError(w, "compute chart", err)
		return
	}

	etag := `"` + chart.ChartID + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, chart.ChartID) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// Houses handles POST /api/houses.
//
//	@Summary		Compute Placidus house cusps
//	@Tags			houses
//	@Accept			json
//	@Produce		json
//	@Param			body	body		HouseRequest	true	"Moment and location"
//	@Success		200		{object}	HouseResponse
//	@Failure		400		{object}	errResponse
//	@Router			/houses [post]
func (h *Handler) Houses(w http.ResponseWriter, r *http.Request) {
	var req HouseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	hc, err := h.svc.Houses(r.Context(), req)
	if err != nil {
		writeServiceError(w, "compute houses", err)
		return
	}
	writeJSON(w, http.StatusOK, hc)
}

// Gate handles GET /api/gates/{gate}.
//
//	@Summary		Describe one gate
//	@Tags			reference
//	@Produce		json
//	@Param			gate	path		int	true	"Gate number 1-64"
//	@Success		200		{object}	GateResponse
//	@Failure		400		{object}	errResponse
//	@Router			/gates/{gate} [get]
func (h *Handler) Gate(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "gate"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("gate must be an integer"))
		return
	}
	info, err := h.svc.Gate(n)
	if err != nil {
		writeServiceError(w, "describe gate", err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// Centers handles GET /api/centers.
//
//	@Summary		List the nine centers with their gates
//	@Tags			reference
//	@Produce		json
//	@Success		200		{object}	CentersResponse
//	@Router			/centers [get]
func (h *Handler) Centers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CentersResponse{Centers: h.svc.Centers()})
}
