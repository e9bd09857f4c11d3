package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/fluentctl/internal/formatter"
	"github.com/desertthunder/fluentctl/internal/models"
	"github.com/desertthunder/fluentctl/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for a full taxonomy export.
type ExportOpts struct {
	OutputDir string  // Base output directory (default: fluent_export_{epoch})
	RateLimit float64 // Requests per second (default: 5)
}

// ExportResult contains the outcome of an export run.
type ExportResult struct {
	OutputDirectory string   `json:"output_directory"`
	TagCount        int      `json:"tag_count"`
	ListCount       int      `json:"list_count"`
	Files           []string `json:"files"`
	ManifestPath    string   `json:"manifest_path"`
}

type taxonomyFetch struct {
	name  string
	phase Phase
	fetch func(context.Context) ([]models.Taxonomy, error)
}

// Export fetches every tag and list and writes one CSV per collection plus a
// manifest.json summarizing the run. Fetches are rate limited so a full export
// stays within the API's limits.
func (e *CRMEngine) Export(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.crm == nil {
		return nil, fmt.Errorf("%w: CRM service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("fluent_export_%d", time.Now().Unix())
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	fetches := []taxonomyFetch{
		{name: "tags", phase: FetchTags, fetch: e.crm.Tags},
		{name: "lists", phase: FetchLists, fetch: e.crm.Lists},
	}

	result := &ExportResult{OutputDirectory: opts.OutputDir}
	collections := make(map[string][]models.Taxonomy, len(fetches))

	for i, f := range fetches {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		e.sendProgress(progress, fetchTaxonomyUpdate(f.phase, i+1, len(fetches), f.name))

		items, err := f.fetch(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", f.name, err)
		}
		collections[f.name] = items
	}

	result.TagCount = len(collections["tags"])
	result.ListCount = len(collections["lists"])

	for i, f := range fetches {
		written, err := formatter.WriteTaxonomyExport(collections[f.name], opts.OutputDir, f.name)
		if err != nil {
			return result, fmt.Errorf("failed to export %s: %w", f.name, err)
		}
		result.Files = append(result.Files, written.File)
		e.sendProgress(progress, wroteFileUpdate(i+1, len(fetches), written.File, written.Count))
	}

	manifest := formatter.Manifest{
		Service:   e.crm.Name(),
		TagCount:  result.TagCount,
		ListCount: result.ListCount,
		Files:     result.Files,
	}
	manifestPath, err := formatter.WriteExportManifest(manifest, opts.OutputDir)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	return result, nil
}
