package services

import (
	_ "embed"
	"fmt"

	"pulse-go-api/internal/models"
	"pulse-go-api/pkg/tabular"
)

//go:embed sample_data.csv
var sampleCSV []byte

// SampleDataset returns the built-in dataset used before any upload has
// occurred. It runs through the same ingestion path as uploaded data.
func SampleDataset() (models.Dataset, error) {
	records, err := tabular.Parse(sampleCSV)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("sample dataset: %w", err)
	}
	ds, err := models.NewDataset(records, "sample")
	if err != nil {
		return models.Dataset{}, fmt.Errorf("sample dataset: %w", err)
	}
	return ds, nil
}
