package tabular

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pulse-go-api/internal/models"
)

const validCSV = `date,monthly_active_users,monthly_revenue,new_signups,churned_users,conversion_rate
2024-01-01,1000,5000.50,120,30,3.5
2024-02-01,1100,5600.25,140,35,3.7
`

func TestParse_Valid(t *testing.T) {
	records, err := Parse([]byte(validCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	first := records[0]
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(want) {
		t.Errorf("date: got %v, want %v", first.Date, want)
	}
	if first.MonthlyActiveUsers != 1000 {
		t.Errorf("mau: got %d, want 1000", first.MonthlyActiveUsers)
	}
	if first.MonthlyRevenue != 5000.50 {
		t.Errorf("revenue: got %v, want 5000.50", first.MonthlyRevenue)
	}
	if first.NewSignups != 120 || first.ChurnedUsers != 30 {
		t.Errorf("signups/churned: got %d/%d", first.NewSignups, first.ChurnedUsers)
	}
	if first.ConversionRate != 3.5 {
		t.Errorf("conversion: got %v, want 3.5", first.ConversionRate)
	}
}

func TestParse_HeaderCaseAndExtraColumns(t *testing.T) {
	csv := `Date,Monthly_Active_Users,monthly_revenue,new_signups,churned_users,conversion_rate,notes
2024-01,1000,5000,120,30,3.5,ignored
`
	records, err := Parse([]byte(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Date.Month() != time.January {
		t.Errorf("got month %v, want January", records[0].Date.Month())
	}
}

func TestParse_SchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{
			name: "missing date column",
			csv:  "monthly_active_users,monthly_revenue,new_signups,churned_users,conversion_rate\n1000,5000,120,30,3.5\n",
			want: "missing required column",
		},
		{
			name: "unparseable date",
			csv:  strings.Replace(validCSV, "2024-01-01", "January 2024", 1),
			want: "unparseable date",
		},
		{
			name: "non-numeric metric",
			csv:  strings.Replace(validCSV, "5000.50", "lots", 1),
			want: "non-numeric",
		},
		{
			name: "no data rows",
			csv:  "date,monthly_active_users,monthly_revenue,new_signups,churned_users,conversion_rate\n",
			want: "no data rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.csv))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var schemaErr *models.SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *models.SchemaError, got %T: %v", err, err)
			}
			if !strings.Contains(schemaErr.Reason, tt.want) {
				t.Errorf("reason %q does not contain %q", schemaErr.Reason, tt.want)
			}
		})
	}
}
