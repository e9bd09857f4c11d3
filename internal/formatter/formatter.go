// package formatter renders CRM data for output (CSV, JSON) and writes export files
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/fluentctl/internal/models"
	"github.com/desertthunder/fluentctl/internal/shared"
)

// TaxonomiesToCSV converts tags or lists to CSV with columns: id, title, slug, created_at, updated_at.
//
// An empty slice still yields the header row.
func TaxonomiesToCSV(items []models.Taxonomy) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"id", "title", "slug", "created_at", "updated_at"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		record := []string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			item.Slug,
			item.CreatedAt,
			item.UpdatedAt,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ContactToJSON generates an indented JSON representation of a contact.
func ContactToJSON(contact *models.Contact) ([]byte, error) {
	return shared.MarshalJSON(contact, true)
}

// TaxonomyExportResult contains the path of the file created by WriteTaxonomyExport.
type TaxonomyExportResult struct {
	File  string
	Count int
}

// WriteTaxonomyExport writes a taxonomy collection as {name}.csv under outputDir.
//
// An empty outputDir writes to the working directory.
func WriteTaxonomyExport(items []models.Taxonomy, outputDir, name string) (*TaxonomyExportResult, error) {
	csvData, err := TaxonomiesToCSV(items)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file := filepath.Join(outputDir, name+".csv")
	if err := os.WriteFile(file, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	return &TaxonomyExportResult{File: file, Count: len(items)}, nil
}

// Manifest summarizes an export run for the accompanying JSON file.
type Manifest struct {
	Service   string   `json:"service"`
	TagCount  int      `json:"tag_count"`
	ListCount int      `json:"list_count"`
	Files     []string `json:"files"`
}

// WriteExportManifest writes a manifest.json next to the exported CSV files.
func WriteExportManifest(manifest Manifest, outputDir string) (string, error) {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return "", fmt.Errorf("failed to generate manifest JSON: %w", err)
	}

	file := filepath.Join(outputDir, "manifest.json")
	if err := os.WriteFile(file, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest file: %w", err)
	}

	return file, nil
}
