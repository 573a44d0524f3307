package models

import "time"

// ScenarioParameters drives the forecast view. Immutable value object;
// every change replaces it wholesale.
type ScenarioParameters struct {
	GrowthMultiplier float64 `json:"growthMultiplier"`
	HorizonMonths    int     `json:"horizonMonths"`
}

// DefaultScenario matches the dashboard's slider defaults.
func DefaultScenario() ScenarioParameters {
	return ScenarioParameters{GrowthMultiplier: 1.0, HorizonMonths: 6}
}

// KPISnapshot holds the numeric KPI panel values derived from the two most
// recent records.
type KPISnapshot struct {
	MAU            int64   `json:"mau"`
	MAUChange      float64 `json:"mauChange"`
	Revenue        float64 `json:"revenue"`
	RevenueChange  float64 `json:"revenueChange"`
	ChurnRate      float64 `json:"churnRate"`
	ConversionRate float64 `json:"conversionRate"`
}

// KPIDisplay is the display-ready KPI panel. When Available is false the
// dataset had too little history and Message carries the reason.
type KPIDisplay struct {
	Available      bool   `json:"available"`
	Message        string `json:"message,omitempty"`
	MAU            string `json:"mau,omitempty"`
	MAUChange      string `json:"mauChange,omitempty"`
	Revenue        string `json:"revenue,omitempty"`
	RevenueChange  string `json:"revenueChange,omitempty"`
	ChurnRate      string `json:"churnRate,omitempty"`
	ConversionRate string `json:"conversionRate,omitempty"`
}

// ForecastPoint is one projected month.
type ForecastPoint struct {
	Date             time.Time `json:"date"`
	ProjectedMAU     float64   `json:"projectedMau"`
	ProjectedRevenue float64   `json:"projectedRevenue"`
}

// ForecastSeries is the ordered projection beyond the last historical
// date. Projected points are never mixed into the canonical dataset.
type ForecastSeries struct {
	Points            []ForecastPoint `json:"points"`
	GrowthRate        float64         `json:"growthRate"`
	RevenueGrowthRate float64         `json:"revenueGrowthRate"`
}

// ChartPoint is a single (date, value) pair in a chart-ready series.
type ChartPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series tags distinguishing historical from projected points in the
// forecast overlay.
const (
	TagHistorical = "Historical"
	TagForecast   = "Forecast"
)

// TaggedPoint is a chart point carrying its series tag.
type TaggedPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Tag   string    `json:"tag"`
}

// EngagementView carries the parallel bar series for grouped comparison.
type EngagementView struct {
	NewSignups   []ChartPoint `json:"newSignups"`
	ChurnedUsers []ChartPoint `json:"churnedUsers"`
}

// ChartBundle groups the four chart-ready series of one render cycle.
// ForecastNote is set when the forecast view degraded.
type ChartBundle struct {
	Growth       []ChartPoint   `json:"growth"`
	Revenue      []ChartPoint   `json:"revenue"`
	Forecast     []TaggedPoint  `json:"forecast"`
	ForecastNote string         `json:"forecastNote,omitempty"`
	Engagement   EngagementView `json:"engagement"`
}

// DatasetInfo describes the committed dataset backing a render cycle.
type DatasetInfo struct {
	Version string    `json:"version"`
	Source  string    `json:"source"`
	Rows    int       `json:"rows"`
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
}

// DashboardResponse is one consistent render cycle: every field derives
// from the same committed snapshot.
type DashboardResponse struct {
	KPIs        KPIDisplay         `json:"kpis"`
	Charts      ChartBundle        `json:"charts"`
	Scenario    ScenarioParameters `json:"scenario"`
	Dataset     DatasetInfo        `json:"dataset"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// UploadResponse acknowledges a successful dataset commit.
type UploadResponse struct {
	Message string      `json:"message"`
	Dataset DatasetInfo `json:"dataset"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
