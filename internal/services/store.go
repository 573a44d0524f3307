package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"pulse-go-api/internal/config"
	"pulse-go-api/internal/models"
	"pulse-go-api/pkg/tabular"
)

// snapshot is one immutable (dataset, parameters) pair. Every render cycle
// reads exactly one snapshot, so no observer can see a mixture of old and
// new state. datasetVersion changes only when the dataset is replaced;
// a parameter change keeps it, which lets dataset-keyed derived results
// survive scenario slider drags.
type snapshot struct {
	datasetVersion string
	dataset        models.Dataset
	params         models.ScenarioParameters
}

// Store is the single owner of canonical dashboard state. Replacement is
// swap-not-mutate behind one write point.
type Store struct {
	mu      sync.RWMutex
	current snapshot

	defaultDataset models.Dataset
	maxHorizon     int

	kpiCache      *derivedCache[models.KPISnapshot]
	forecastCache *derivedCache[models.ForecastSeries]
}

// NewStore initializes canonical state from the default sample dataset and
// default scenario parameters.
func NewStore(cfg *config.Config, sample models.Dataset) *Store {
	return &Store{
		current: snapshot{
			datasetVersion: uuid.NewString(),
			dataset:        sample,
			params:         models.DefaultScenario(),
		},
		defaultDataset: sample,
		maxHorizon:     cfg.MaxHorizonMonths,
		kpiCache:       newDerivedCache[models.KPISnapshot](cfg.CacheTTL),
		forecastCache:  newDerivedCache[models.ForecastSeries](cfg.CacheTTL),
	}
}

// CommitUpload parses and validates raw tabular bytes, then atomically
// replaces the canonical dataset. On any failure the prior dataset stays
// committed untouched.
func (s *Store) CommitUpload(data []byte, filename string) (models.DatasetInfo, error) {
	records, err := tabular.Parse(data)
	if err != nil {
		return models.DatasetInfo{}, err
	}

	source := filename
	if source == "" {
		source = "upload"
	}
	ds, err := models.NewDataset(records, source)
	if err != nil {
		return models.DatasetInfo{}, err
	}

	s.mu.Lock()
	s.current = snapshot{
		datasetVersion: uuid.NewString(),
		dataset:        ds,
		params:         s.current.params,
	}
	s.mu.Unlock()

	// Results for superseded dataset versions can never be read again.
	s.kpiCache.flush()
	s.forecastCache.flush()

	return s.datasetInfo(), nil
}

// SetScenario validates and installs new scenario parameters wholesale.
// The dataset version is kept so dataset-only views are not recomputed.
func (s *Store) SetScenario(params models.ScenarioParameters) error {
	if err := ValidateScenario(params, s.maxHorizon); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = snapshot{
		datasetVersion: s.current.datasetVersion,
		dataset:        s.current.dataset,
		params:         params,
	}
	s.mu.Unlock()
	return nil
}

// Scenario returns the current scenario parameters.
func (s *Store) Scenario() models.ScenarioParameters {
	return s.read().params
}

// Reset restores the default sample dataset and default parameters.
func (s *Store) Reset() models.DatasetInfo {
	s.mu.Lock()
	s.current = snapshot{
		datasetVersion: uuid.NewString(),
		dataset:        s.defaultDataset,
		params:         models.DefaultScenario(),
	}
	s.mu.Unlock()

	s.kpiCache.flush()
	s.forecastCache.flush()

	return s.datasetInfo()
}

// Render assembles one dashboard payload from a single snapshot. Failures
// are isolated per view: a dataset too short for KPIs or forecasting
// degrades those views while the rest still renders.
func (s *Store) Render() models.DashboardResponse {
	snap := s.read()

	resp := models.DashboardResponse{
		Scenario:    snap.params,
		Dataset:     infoFor(snap),
		GeneratedAt: time.Now().UTC(),
	}

	if kpis, err := s.kpis(snap); err != nil {
		resp.KPIs = UnavailableKPIs()
	} else {
		resp.KPIs = FormatKPIs(kpis)
	}

	resp.Charts.Growth = GrowthSeries(snap.dataset)
	resp.Charts.Revenue = RevenueSeries(snap.dataset)
	resp.Charts.Engagement = EngagementSeries(snap.dataset)

	if fc, err := s.forecast(snap); err != nil {
		resp.Charts.Forecast = HistoricalOverlay(snap.dataset)
		resp.Charts.ForecastNote = "not enough data to forecast"
	} else {
		resp.Charts.Forecast = ForecastOverlay(snap.dataset, fc)
	}

	return resp
}

// Chart derives a single named series from the current snapshot.
func (s *Store) Chart(name string) (any, error) {
	snap := s.read()

	switch name {
	case "growth":
		return GrowthSeries(snap.dataset), nil
	case "revenue":
		return RevenueSeries(snap.dataset), nil
	case "engagement":
		return EngagementSeries(snap.dataset), nil
	case "forecast":
		fc, err := s.forecast(snap)
		if err != nil {
			return nil, err
		}
		return ForecastOverlay(snap.dataset, fc), nil
	default:
		return nil, fmt.Errorf("unknown chart %q", name)
	}
}

// DatasetInfo describes the currently committed dataset.
func (s *Store) DatasetInfo() models.DatasetInfo {
	return s.datasetInfo()
}

// DatasetVersion exposes the current dataset version for readiness checks
// and tests.
func (s *Store) DatasetVersion() string {
	return s.read().datasetVersion
}

func (s *Store) read() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) kpis(snap snapshot) (models.KPISnapshot, error) {
	if cached, ok := s.kpiCache.get(snap.datasetVersion); ok {
		return cached, nil
	}
	kpis, err := ComputeKPIs(snap.dataset)
	if err != nil {
		return models.KPISnapshot{}, err
	}
	s.kpiCache.set(snap.datasetVersion, kpis)
	return kpis, nil
}

func (s *Store) forecast(snap snapshot) (models.ForecastSeries, error) {
	key := fmt.Sprintf("%s|%g|%d", snap.datasetVersion,
		snap.params.GrowthMultiplier, snap.params.HorizonMonths)
	if cached, ok := s.forecastCache.get(key); ok {
		return cached, nil
	}
	fc, err := Forecast(snap.dataset, snap.params)
	if err != nil {
		return models.ForecastSeries{}, err
	}
	s.forecastCache.set(key, fc)
	return fc, nil
}

func (s *Store) datasetInfo() models.DatasetInfo {
	return infoFor(s.read())
}

func infoFor(snap snapshot) models.DatasetInfo {
	info := models.DatasetInfo{
		Version: snap.datasetVersion,
		Source:  snap.dataset.Source,
		Rows:    snap.dataset.Len(),
	}
	if snap.dataset.Len() > 0 {
		info.From = snap.dataset.Records[0].Date
		info.To = snap.dataset.Latest().Date
	}
	return info
}

// IsInsufficientHistory reports whether err is the displayable
// "not enough data" condition.
func IsInsufficientHistory(err error) bool {
	return errors.Is(err, models.ErrInsufficientHistory)
}
