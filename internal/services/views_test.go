package services

import (
	"reflect"
	"testing"
	"time"

	"pulse-go-api/internal/models"
)

func viewsDataset(t *testing.T) models.Dataset {
	t.Helper()
	return testDataset(t,
		record(2024, time.January, 1000, 5000, 100, 50, 3.0),
		record(2024, time.February, 1100, 5500, 120, 60, 3.2),
		record(2024, time.March, 1250, 6200, 150, 55, 3.4),
	)
}

func TestGrowthSeries(t *testing.T) {
	series := GrowthSeries(viewsDataset(t))

	if len(series) != 3 {
		t.Fatalf("got %d points, want 3", len(series))
	}
	if series[0].Value != 1000 || series[2].Value != 1250 {
		t.Errorf("unexpected values: %v", series)
	}
	for i := 1; i < len(series); i++ {
		if !series[i-1].Date.Before(series[i].Date) {
			t.Fatal("series not ascending by date")
		}
	}
}

func TestRevenueSeries(t *testing.T) {
	series := RevenueSeries(viewsDataset(t))
	if series[1].Value != 5500 {
		t.Errorf("got %v, want 5500", series[1].Value)
	}
}

func TestForecastOverlay_Tags(t *testing.T) {
	ds := viewsDataset(t)
	fc, err := Forecast(ds, models.ScenarioParameters{GrowthMultiplier: 1.0, HorizonMonths: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	overlay := ForecastOverlay(ds, fc)
	if len(overlay) != ds.Len()+2 {
		t.Fatalf("got %d points, want %d", len(overlay), ds.Len()+2)
	}
	for i, p := range overlay {
		wantTag := models.TagHistorical
		if i >= ds.Len() {
			wantTag = models.TagForecast
		}
		if p.Tag != wantTag {
			t.Errorf("point %d: tag %q, want %q", i, p.Tag, wantTag)
		}
	}
	// projected points continue past the last historical date
	if !overlay[len(overlay)-1].Date.After(ds.Latest().Date) {
		t.Error("forecast points should extend beyond the historical range")
	}
}

func TestEngagementSeries_ParallelSeries(t *testing.T) {
	view := EngagementSeries(viewsDataset(t))

	if len(view.NewSignups) != 3 || len(view.ChurnedUsers) != 3 {
		t.Fatalf("series lengths: %d/%d, want 3/3", len(view.NewSignups), len(view.ChurnedUsers))
	}
	for i := range view.NewSignups {
		if !view.NewSignups[i].Date.Equal(view.ChurnedUsers[i].Date) {
			t.Fatalf("series dates diverge at index %d", i)
		}
	}
	if view.NewSignups[2].Value != 150 || view.ChurnedUsers[2].Value != 55 {
		t.Errorf("unexpected March values: %v / %v", view.NewSignups[2], view.ChurnedUsers[2])
	}
}

func TestViews_Idempotent(t *testing.T) {
	ds := viewsDataset(t)
	params := models.ScenarioParameters{GrowthMultiplier: 1.2, HorizonMonths: 3}

	fc1, err := Forecast(ds, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fc2, _ := Forecast(ds, params)

	if !reflect.DeepEqual(GrowthSeries(ds), GrowthSeries(ds)) {
		t.Error("growth series not deterministic")
	}
	if !reflect.DeepEqual(RevenueSeries(ds), RevenueSeries(ds)) {
		t.Error("revenue series not deterministic")
	}
	if !reflect.DeepEqual(EngagementSeries(ds), EngagementSeries(ds)) {
		t.Error("engagement series not deterministic")
	}
	if !reflect.DeepEqual(ForecastOverlay(ds, fc1), ForecastOverlay(ds, fc2)) {
		t.Error("forecast overlay not deterministic")
	}
}
