package main

import (
	"context"

	"github.com/desertthunder/fluentctl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TagList prints all tags, CSV by default.
func (r *Runner) TagList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	r.logger.Info("listing tags")

	tags, err := r.crm.Tags(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(tags, cmd.Bool("pretty"))
	}
	return r.writeCSV(tags)
}

// TagCreate creates a tag from --title and --slug.
func (r *Runner) TagCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	title, slug := cmd.String("title"), cmd.String("slug")
	r.logger.Infof("creating tag %v (%v)", title, slug)

	response, err := r.crm.CreateTag(ctx, title, slug)
	if err != nil {
		return err
	}

	return r.writeJSON(response, true)
}

// TagDelete deletes a tag by ID.
func (r *Runner) TagDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	id := cmd.Int64("id")
	r.logger.Infof("deleting tag %v", id)

	response, err := r.crm.DeleteTag(ctx, id)
	if err != nil {
		return err
	}

	return r.writeJSON(response, true)
}

// ListList prints all lists, CSV by default.
func (r *Runner) ListList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	r.logger.Info("listing lists")

	lists, err := r.crm.Lists(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(lists, cmd.Bool("pretty"))
	}
	return r.writeCSV(lists)
}

// ListCreate creates a list from --title and --slug.
func (r *Runner) ListCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	title, slug := cmd.String("title"), cmd.String("slug")
	r.logger.Infof("creating list %v (%v)", title, slug)

	response, err := r.crm.CreateList(ctx, title, slug)
	if err != nil {
		return err
	}

	return r.writeJSON(response, true)
}

// ListUpdate updates a list's title and/or slug.
func (r *Runner) ListUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	id := cmd.Int64("id")
	r.logger.Infof("updating list %v", id)

	response, err := r.crm.UpdateList(ctx, id, cmd.String("title"), cmd.String("slug"))
	if err != nil {
		return err
	}

	return r.writeJSON(response, true)
}

// ListDelete deletes a list by ID.
func (r *Runner) ListDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	id := cmd.Int64("id")
	r.logger.Infof("deleting list %v", id)

	response, err := r.crm.DeleteList(ctx, id)
	if err != nil {
		return err
	}

	return r.writeJSON(response, true)
}

// Export writes all tags and lists to CSV files with a manifest.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = r.config.Export.OutputDir
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
		close(done)
	}()

	result, err := r.engine.Export(ctx, progress, tasks.ExportOpts{
		OutputDir: outputDir,
		RateLimit: r.config.Client.RateLimit,
	})
	close(progress)
	<-done
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d tags and %d lists to %s\n", result.TagCount, result.ListCount, result.OutputDirectory)
	for _, file := range result.Files {
		r.writePlain("  %s\n", file)
	}
	r.writePlain("  %s\n", result.ManifestPath)

	return nil
}
