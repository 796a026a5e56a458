package chartservice_test

import (
	"context"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/bodygraph/internal/angle"
	"github.com/starford/bodygraph/internal/apperr"
	"github.com/starford/bodygraph/internal/bodygraph"
	"github.com/starford/bodygraph/internal/chartservice"
	"github.com/starford/bodygraph/internal/design"
	"github.com/starford/bodygraph/internal/ephemeris"
	"github.com/starford/bodygraph/internal/houses"
	"github.com/starford/bodygraph/internal/metrics"
	"github.com/starford/bodygraph/internal/models"
	"github.com/starford/bodygraph/internal/testutil"
)

func TestChart_NewYear1990(t *testing.T) {
	svc := testutil.ChartService(t)
	chart, err := svc.Chart(context.Background(), models.ChartRequest{BirthDate: "1990-01-01"})
	require.NoError(t, err)

	assert.Contains(t, []string{"1989-10-04", "1989-10-05", "1989-10-06"}, chart.DesignDate)
	assert.Equal(t, 38, chart.Personality[ephemeris.Sun].Gate)
	assert.Equal(t, 39, chart.Personality[ephemeris.Earth].Gate)
	assert.Equal(t, 48, chart.Design[ephemeris.Sun].Gate)
	assert.Equal(t, 21, chart.Design[ephemeris.Earth].Gate)
	assert.Equal(t, "38/39 | 48/21", chart.IncarnationCross)
	assert.Len(t, chart.ChartID, 16)
	assert.Nil(t, chart.Houses)
	assert.Nil(t, chart.PlanetHouses)
}

func TestChart_Deterministic(t *testing.T) {
	svc := testutil.ChartService(t)
	req := models.ChartRequest{BirthDate: "1975-06-15", BirthTime: "08:45", UTCOffset: testutil.Float(3)}

	a, err := svc.Chart(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Chart(context.Background(), req)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("charts differ (-first +second):\n%s", diff)
	}
}

func TestChart_Consistency(t *testing.T) {
	svc := testutil.ChartService(t)
	chart, err := svc.Chart(context.Background(), models.ChartRequest{BirthDate: "2001-09-09", BirthTime: "21:10"})
	require.NoError(t, err)

	require.Len(t, chart.Personality, len(ephemeris.Bodies))
	require.Len(t, chart.Design, len(ephemeris.Bodies))

	// Design Sun sits 88 degrees behind the birth Sun.
	arc := angle.Normalize(chart.Personality[ephemeris.Sun].Longitude - chart.Design[ephemeris.Sun].Longitude)
	assert.InDelta(t, 88, arc, 1e-4)

	var gates []int
	for _, set := range []map[ephemeris.Body]models.BodyActivation{chart.Personality, chart.Design} {
		for body, act := range set {
			assert.Equal(t, bodygraph.GateAt(act.Longitude), act.Activation, "body %s", body)
			gates = append(gates, act.Gate)
		}
	}
	slices.Sort(gates)
	assert.Equal(t, slices.Compact(gates), chart.AllGates)

	assert.Len(t, append(slices.Clone(chart.DefinedCenters), chart.UndefinedCenters...), len(bodygraph.Centers))
	assert.Equal(t, bodygraph.Profile(chart.Personality[ephemeris.Sun].Line, chart.Design[ephemeris.Sun].Line), chart.Profile)
	assert.NotEmpty(t, chart.Strategy)
}

func TestChart_WithHouses(t *testing.T) {
	svc := testutil.ChartService(t)
	base := models.ChartRequest{BirthDate: "1990-01-01", BirthTime: "12:00"}
	located := base
	located.Latitude = testutil.Float(48.85)
	located.Longitude = testutil.Float(2.35)

	plain, err := svc.Chart(context.Background(), base)
	require.NoError(t, err)
	chart, err := svc.Chart(context.Background(), located)
	require.NoError(t, err)

	require.NotNil(t, chart.Houses)
	assert.False(t, chart.Houses.Circumpolar)
	assert.Len(t, chart.PlanetHouses, len(ephemeris.Bodies))
	for body, house := range chart.PlanetHouses {
		assert.GreaterOrEqual(t, house, 1, "body %s", body)
		assert.LessOrEqual(t, house, 12, "body %s", body)
	}
	assert.Equal(t, plain.Personality, chart.Personality)
	assert.NotEqual(t, plain.ChartID, chart.ChartID)
}

func TestChart_InvalidInput(t *testing.T) {
	svc := testutil.ChartService(t)
	tests := []struct {
		name string
		req  models.ChartRequest
	}{
		{"missing date", models.ChartRequest{}},
		{"impossible date", models.ChartRequest{BirthDate: "1990-02-30"}},
		{"year before 1583", models.ChartRequest{BirthDate: "1200-01-01"}},
		{"location without time", models.ChartRequest{BirthDate: "1990-01-01", Latitude: testutil.Float(10), Longitude: testutil.Float(10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Chart(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestHouses(t *testing.T) {
	svc := testutil.ChartService(t)

	byJDE, err := svc.Houses(context.Background(), models.HouseRequest{
		JDE: testutil.Float(2451545), Latitude: testutil.Float(51.5), Longitude: testutil.Float(0),
	})
	require.NoError(t, err)
	byCivil, err := svc.Houses(context.Background(), models.HouseRequest{
		Date: "2000-01-01", Time: "12:00", Latitude: testutil.Float(51.5), Longitude: testutil.Float(0),
	})
	require.NoError(t, err)

	assert.InDelta(t, byJDE.Ascendant, byCivil.Ascendant, 1e-9)
	assert.InDelta(t, byJDE.Midheaven, byCivil.Midheaven, 1e-9)

	_, err = svc.Houses(context.Background(), models.HouseRequest{JDE: testutil.Float(2451545)})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestGate(t *testing.T) {
	svc := testutil.ChartService(t)

	info, err := svc.Gate(41)
	require.NoError(t, err)
	assert.Equal(t, bodygraph.Root, info.Center)
	assert.InDelta(t, bodygraph.WheelOffset, info.Start, 1e-9)
	assert.InDelta(t, bodygraph.WheelOffset+bodygraph.GateSpan, info.End, 1e-9)
	assert.Equal(t, []int{30}, info.Partners)

	_, err = svc.Gate(65)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestCenters(t *testing.T) {
	svc := testutil.ChartService(t)
	centers := svc.Centers()
	require.Len(t, centers, 9)

	total := 0
	for _, c := range centers {
		assert.Equal(t, bodygraph.IsMotor(c.Center), c.Motor)
		total += len(c.Gates)
	}
	assert.Equal(t, bodygraph.GateCount, total)
}

func TestChart_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	eph := testutil.Ephemeris(t)
	svc := chartservice.NewService(eph, design.NewSolver(eph), houses.NewSolver(), chartservice.Defaults{},
		chartservice.WithMetrics(metrics.New(reg)))

	_, err := svc.Chart(context.Background(), models.ChartRequest{BirthDate: "1990-01-01"})
	require.NoError(t, err)
	_, err = svc.Chart(context.Background(), models.ChartRequest{BirthDate: "not a date"})
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	_, err = svc.Houses(context.Background(), models.HouseRequest{
		JDE: testutil.Float(2451545), Latitude: testutil.Float(0), Longitude: testutil.Float(0),
	})
	require.NoError(t, err)

	// chart/ok, chart/invalid, houses/ok
	n, err := promtest.GatherAndCount(reg, "bodygraph_computations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = promtest.GatherAndCount(reg, "bodygraph_design_solver_iterations")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
