package services

import "pulse-go-api/internal/models"

// The view derivation layer: pure, stateless transforms from a committed
// dataset (plus forecast output) to chart-ready series. Each transform is
// deterministic for identical input and safe to recompute on every request.

// GrowthSeries returns (date, MAU) pairs ascending by date.
func GrowthSeries(ds models.Dataset) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, ds.Len())
	for _, r := range ds.Records {
		points = append(points, models.ChartPoint{
			Date:  r.Date,
			Value: float64(r.MonthlyActiveUsers),
		})
	}
	return points
}

// RevenueSeries returns (date, revenue) pairs ascending by date.
func RevenueSeries(ds models.Dataset) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, ds.Len())
	for _, r := range ds.Records {
		points = append(points, models.ChartPoint{Date: r.Date, Value: r.MonthlyRevenue})
	}
	return points
}

// ForecastOverlay concatenates historical MAU tagged Historical with the
// projected series tagged Forecast, so the consumer can style the two
// segments without re-deriving them.
func ForecastOverlay(ds models.Dataset, fc models.ForecastSeries) []models.TaggedPoint {
	points := make([]models.TaggedPoint, 0, ds.Len()+len(fc.Points))
	for _, r := range ds.Records {
		points = append(points, models.TaggedPoint{
			Date:  r.Date,
			Value: float64(r.MonthlyActiveUsers),
			Tag:   models.TagHistorical,
		})
	}
	for _, p := range fc.Points {
		points = append(points, models.TaggedPoint{
			Date:  p.Date,
			Value: p.ProjectedMAU,
			Tag:   models.TagForecast,
		})
	}
	return points
}

// HistoricalOverlay is the forecast overlay without a projection, used
// when the forecast view degrades but the chart should still render.
func HistoricalOverlay(ds models.Dataset) []models.TaggedPoint {
	return ForecastOverlay(ds, models.ForecastSeries{})
}

// EngagementSeries returns the parallel (date, new_signups) and
// (date, churned_users) series for grouped bar comparison.
func EngagementSeries(ds models.Dataset) models.EngagementView {
	view := models.EngagementView{
		NewSignups:   make([]models.ChartPoint, 0, ds.Len()),
		ChurnedUsers: make([]models.ChartPoint, 0, ds.Len()),
	}
	for _, r := range ds.Records {
		view.NewSignups = append(view.NewSignups, models.ChartPoint{
			Date:  r.Date,
			Value: float64(r.NewSignups),
		})
		view.ChurnedUsers = append(view.ChurnedUsers, models.ChartPoint{
			Date:  r.Date,
			Value: float64(r.ChurnedUsers),
		})
	}
	return view
}
