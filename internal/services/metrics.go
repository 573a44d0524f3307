package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"pulse-go-api/internal/models"
)

// ComputeKPIs derives the KPI panel from the two most recent records.
// Churn rate divides churned users by the previous month's MAU: churn is
// measured against the base population that could have churned.
func ComputeKPIs(ds models.Dataset) (models.KPISnapshot, error) {
	if ds.Len() < 2 {
		return models.KPISnapshot{}, fmt.Errorf("kpi: %w", models.ErrInsufficientHistory)
	}

	latest := ds.Latest()
	previous := ds.Previous()
	if previous.MonthlyActiveUsers == 0 || previous.MonthlyRevenue == 0 {
		return models.KPISnapshot{}, fmt.Errorf("kpi: previous month has zero base: %w",
			models.ErrInsufficientHistory)
	}

	return models.KPISnapshot{
		MAU: latest.MonthlyActiveUsers,
		MAUChange: pctChange(float64(previous.MonthlyActiveUsers),
			float64(latest.MonthlyActiveUsers)),
		Revenue:        latest.MonthlyRevenue,
		RevenueChange:  pctChange(previous.MonthlyRevenue, latest.MonthlyRevenue),
		ChurnRate:      float64(latest.ChurnedUsers) / float64(previous.MonthlyActiveUsers) * 100,
		ConversionRate: latest.ConversionRate,
	}, nil
}

// FormatKPIs renders a snapshot as display-ready strings: counts and
// currency with comma separators, percentages with one decimal and an
// up/down arrow as the delta indicator.
func FormatKPIs(k models.KPISnapshot) models.KPIDisplay {
	return models.KPIDisplay{
		Available:      true,
		MAU:            formatCount(k.MAU),
		MAUChange:      formatDelta(k.MAUChange),
		Revenue:        "$" + formatCount(int64(math.Round(k.Revenue))),
		RevenueChange:  formatDelta(k.RevenueChange),
		ChurnRate:      fmt.Sprintf("%.1f%%", k.ChurnRate),
		ConversionRate: fmt.Sprintf("%.1f%%", k.ConversionRate),
	}
}

// UnavailableKPIs is the degraded KPI panel shown when the dataset cannot
// support delta metrics.
func UnavailableKPIs() models.KPIDisplay {
	return models.KPIDisplay{
		Available: false,
		Message:   "not enough data: at least 2 months of history required",
	}
}

func pctChange(previous, latest float64) float64 {
	return (latest - previous) / previous * 100
}

func formatDelta(change float64) string {
	arrow := "↑"
	if change < 0 {
		arrow = "↓"
	}
	return fmt.Sprintf("%s %.1f%% from last month", arrow, math.Abs(change))
}

// formatCount adds comma separators to an integer. e.g. 1234567 -> "1,234,567"
func formatCount(n int64) string {
	if n < 0 {
		return "-" + formatCount(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
