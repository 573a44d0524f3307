package services

import (
	"fmt"
	"math"
	"time"

	"pulse-go-api/internal/models"
)

// trailingWindow is the number of most recent records used to estimate
// growth rates. Documented behavior of the dashboard, do not tune.
const trailingWindow = 6

// maxGrowthMultiplier bounds the scenario multiplier; anything larger
// compounds into overflow territory for long horizons.
const maxGrowthMultiplier = 100.0

// ValidateScenario rejects scenario parameters before any computation.
// maxHorizon caps the projection length (configurable, slider goes to 12).
func ValidateScenario(p models.ScenarioParameters, maxHorizon int) error {
	if p.HorizonMonths <= 0 {
		return &models.ParameterError{Field: "horizonMonths", Reason: "must be a positive integer"}
	}
	if p.HorizonMonths > maxHorizon {
		return &models.ParameterError{
			Field:  "horizonMonths",
			Reason: fmt.Sprintf("must be at most %d", maxHorizon),
		}
	}
	if math.IsNaN(p.GrowthMultiplier) || math.IsInf(p.GrowthMultiplier, 0) {
		return &models.ParameterError{Field: "growthMultiplier", Reason: "must be a finite number"}
	}
	if p.GrowthMultiplier < 0 || p.GrowthMultiplier > maxGrowthMultiplier {
		return &models.ParameterError{
			Field:  "growthMultiplier",
			Reason: fmt.Sprintf("must be within [0, %.0f]", maxGrowthMultiplier),
		}
	}
	return nil
}

// Forecast projects MAU and revenue beyond the last historical date using
// naive compounding extrapolation: the mean month-over-month growth of the
// trailing window, scaled by the scenario multiplier, compounded per month.
// Projected dates advance in fixed 30-day steps, matching the dashboard's
// documented behavior rather than calendar-month arithmetic.
func Forecast(ds models.Dataset, params models.ScenarioParameters) (models.ForecastSeries, error) {
	if params.HorizonMonths <= 0 {
		return models.ForecastSeries{}, &models.ParameterError{
			Field: "horizonMonths", Reason: "must be a positive integer",
		}
	}

	window := ds.Tail(trailingWindow)
	if len(window) < 2 {
		return models.ForecastSeries{}, fmt.Errorf("forecast: %w", models.ErrInsufficientHistory)
	}

	growthRate, ok := meanPctChange(window, func(r models.MetricRecord) float64 {
		return float64(r.MonthlyActiveUsers)
	})
	if !ok {
		return models.ForecastSeries{}, fmt.Errorf("forecast: no usable growth window: %w",
			models.ErrInsufficientHistory)
	}
	revenueGrowthRate, ok := meanPctChange(window, func(r models.MetricRecord) float64 {
		return r.MonthlyRevenue
	})
	if !ok {
		return models.ForecastSeries{}, fmt.Errorf("forecast: no usable revenue window: %w",
			models.ErrInsufficientHistory)
	}

	adjustedGrowth := growthRate * params.GrowthMultiplier
	adjustedRevenueGrowth := revenueGrowthRate * params.GrowthMultiplier

	last := ds.Latest()
	lastMAU := float64(last.MonthlyActiveUsers)
	lastRevenue := last.MonthlyRevenue

	points := make([]models.ForecastPoint, 0, params.HorizonMonths)
	for i := 1; i <= params.HorizonMonths; i++ {
		points = append(points, models.ForecastPoint{
			Date:             last.Date.Add(time.Duration(30*i) * 24 * time.Hour),
			ProjectedMAU:     clampFloor(lastMAU * math.Pow(1+adjustedGrowth, float64(i))),
			ProjectedRevenue: clampFloor(lastRevenue * math.Pow(1+adjustedRevenueGrowth, float64(i))),
		})
	}

	return models.ForecastSeries{
		Points:            points,
		GrowthRate:        adjustedGrowth,
		RevenueGrowthRate: adjustedRevenueGrowth,
	}, nil
}

// meanPctChange averages month-over-month percentage change of value
// across consecutive window pairs. Pairs with a zero previous value are
// skipped; ok is false when no usable pair remains.
func meanPctChange(window []models.MetricRecord, value func(models.MetricRecord) float64) (float64, bool) {
	sum := 0.0
	pairs := 0
	for i := 1; i < len(window); i++ {
		prev := value(window[i-1])
		if prev == 0 {
			continue
		}
		sum += (value(window[i]) - prev) / prev
		pairs++
	}
	if pairs == 0 {
		return 0, false
	}
	return sum / float64(pairs), true
}

// clampFloor prevents negative user counts or revenue when the adjusted
// growth rate drops at or below -100%.
func clampFloor(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
