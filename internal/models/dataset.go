package models

import (
	"sort"
	"time"
)

// MetricRecord is one calendar month's observation.
type MetricRecord struct {
	Date               time.Time `json:"date"`
	MonthlyActiveUsers int64     `json:"monthly_active_users"`
	MonthlyRevenue     float64   `json:"monthly_revenue"`
	NewSignups         int64     `json:"new_signups"`
	ChurnedUsers       int64     `json:"churned_users"`
	ConversionRate     float64   `json:"conversion_rate"`
}

// Dataset is an ordered monthly time series, sorted ascending by date with
// no duplicate dates. Construct via NewDataset; treat as immutable after.
type Dataset struct {
	Records []MetricRecord `json:"records"`
	Source  string         `json:"source"`
}

// NewDataset validates candidate records and returns a canonical-ready
// dataset: sorted by date ascending, duplicate dates rejected, metric
// fields range-checked. The input slice is not modified.
func NewDataset(records []MetricRecord, source string) (Dataset, error) {
	if len(records) == 0 {
		return Dataset{}, NewSchemaError("no data rows found")
	}

	sorted := make([]MetricRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	for i, r := range sorted {
		if i > 0 && sorted[i-1].Date.Equal(r.Date) {
			return Dataset{}, NewSchemaError("duplicate date %s", r.Date.Format("2006-01-02"))
		}
		if r.MonthlyActiveUsers < 0 || r.NewSignups < 0 || r.ChurnedUsers < 0 {
			return Dataset{}, NewSchemaError("negative metric value on %s", r.Date.Format("2006-01-02"))
		}
		if r.MonthlyRevenue < 0 {
			return Dataset{}, NewSchemaError("negative revenue on %s", r.Date.Format("2006-01-02"))
		}
		if r.ConversionRate < 0 || r.ConversionRate > 100 {
			return Dataset{}, NewSchemaError("conversion_rate %.2f outside [0,100] on %s",
				r.ConversionRate, r.Date.Format("2006-01-02"))
		}
	}

	return Dataset{Records: sorted, Source: source}, nil
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.Records) }

// Latest returns the most recent record. Callers must check Len first.
func (d Dataset) Latest() MetricRecord { return d.Records[len(d.Records)-1] }

// Previous returns the second most recent record.
func (d Dataset) Previous() MetricRecord { return d.Records[len(d.Records)-2] }

// Tail returns the trailing n records (all of them when n exceeds Len).
func (d Dataset) Tail(n int) []MetricRecord {
	if n >= len(d.Records) {
		return d.Records
	}
	return d.Records[len(d.Records)-n:]
}
