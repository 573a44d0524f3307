// Package tabular parses uploaded CSV content into candidate metric
// records. It never touches canonical state: callers validate and commit.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"pulse-go-api/internal/models"
)

var requiredColumns = []string{
	"date",
	"monthly_active_users",
	"monthly_revenue",
	"new_signups",
	"churned_users",
	"conversion_rate",
}

var dateLayouts = []string{"2006-01-02", "2006-01", "2006/01/02", "01/02/2006"}

// Parse decodes CSV bytes into candidate records. The first row must be a
// header containing every required column (case-insensitive, extra columns
// ignored). Any malformed cell yields a *models.SchemaError.
func Parse(data []byte) ([]models.MetricRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, models.NewSchemaError("unable to read header row: %v", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []models.MetricRecord
	for rowNum := 2; ; rowNum++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, models.NewSchemaError("row %d: %v", rowNum, err)
		}

		rec, err := parseRow(row, cols, rowNum)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, models.NewSchemaError("no data rows found")
	}
	return records, nil
}

func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, models.NewSchemaError("missing required column %q", name)
		}
	}
	return cols, nil
}

func parseRow(row []string, cols map[string]int, rowNum int) (models.MetricRecord, error) {
	cell := func(name string) (string, error) {
		idx := cols[name]
		if idx >= len(row) {
			return "", models.NewSchemaError("row %d: missing value for column %q", rowNum, name)
		}
		return strings.TrimSpace(row[idx]), nil
	}

	var rec models.MetricRecord

	raw, err := cell("date")
	if err != nil {
		return rec, err
	}
	date, err := parseDate(raw)
	if err != nil {
		return rec, models.NewSchemaError("row %d: unparseable date %q", rowNum, raw)
	}
	rec.Date = date

	intFields := []struct {
		name string
		dst  *int64
	}{
		{"monthly_active_users", &rec.MonthlyActiveUsers},
		{"new_signups", &rec.NewSignups},
		{"churned_users", &rec.ChurnedUsers},
	}
	for _, f := range intFields {
		raw, err := cell(f.name)
		if err != nil {
			return rec, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rec, models.NewSchemaError("row %d: non-numeric %s %q", rowNum, f.name, raw)
		}
		*f.dst = int64(v)
	}

	floatFields := []struct {
		name string
		dst  *float64
	}{
		{"monthly_revenue", &rec.MonthlyRevenue},
		{"conversion_rate", &rec.ConversionRate},
	}
	for _, f := range floatFields {
		raw, err := cell(f.name)
		if err != nil {
			return rec, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rec, models.NewSchemaError("row %d: non-numeric %s %q", rowNum, f.name, raw)
		}
		*f.dst = v
	}

	return rec, nil
}

func parseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
