package models

import (
	"errors"
	"testing"
	"time"
)

func monthRecord(year int, month time.Month, mau int64) MetricRecord {
	return MetricRecord{
		Date:               time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		MonthlyActiveUsers: mau,
		MonthlyRevenue:     float64(mau) * 5,
		NewSignups:         mau / 10,
		ChurnedUsers:       mau / 20,
		ConversionRate:     3.5,
	}
}

func TestNewDataset_SortsByDate(t *testing.T) {
	records := []MetricRecord{
		monthRecord(2024, time.March, 1200),
		monthRecord(2024, time.January, 1000),
		monthRecord(2024, time.February, 1100),
	}

	ds, err := NewDataset(records, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < ds.Len(); i++ {
		if !ds.Records[i-1].Date.Before(ds.Records[i].Date) {
			t.Fatalf("records not strictly ascending at index %d", i)
		}
	}
	// input must not be reordered in place
	if records[0].Date.Month() != time.March {
		t.Error("input slice was mutated")
	}
}

func TestNewDataset_RejectsDuplicateDates(t *testing.T) {
	records := []MetricRecord{
		monthRecord(2024, time.January, 1000),
		monthRecord(2024, time.January, 1100),
	}

	_, err := NewDataset(records, "test")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
}

func TestNewDataset_RangeChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MetricRecord)
	}{
		{"negative mau", func(r *MetricRecord) { r.MonthlyActiveUsers = -1 }},
		{"negative revenue", func(r *MetricRecord) { r.MonthlyRevenue = -0.01 }},
		{"conversion above 100", func(r *MetricRecord) { r.ConversionRate = 100.5 }},
		{"negative conversion", func(r *MetricRecord) { r.ConversionRate = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := monthRecord(2024, time.January, 1000)
			tt.mutate(&rec)
			_, err := NewDataset([]MetricRecord{rec}, "test")
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
		})
	}
}

func TestNewDataset_Empty(t *testing.T) {
	_, err := NewDataset(nil, "test")
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestDataset_Tail(t *testing.T) {
	ds, err := NewDataset([]MetricRecord{
		monthRecord(2024, time.January, 1000),
		monthRecord(2024, time.February, 1100),
		monthRecord(2024, time.March, 1200),
	}, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(ds.Tail(2)); got != 2 {
		t.Errorf("Tail(2): got %d records, want 2", got)
	}
	if got := len(ds.Tail(10)); got != 3 {
		t.Errorf("Tail(10): got %d records, want 3", got)
	}
	if ds.Tail(2)[0].Date.Month() != time.February {
		t.Error("Tail(2) should start at February")
	}
}
