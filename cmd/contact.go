package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/fluentctl/internal/membership"
	"github.com/desertthunder/fluentctl/internal/models"
	"github.com/desertthunder/fluentctl/internal/shared"
	"github.com/desertthunder/fluentctl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// contactRef builds a ContactRef from the --email/--id flags.
func contactRef(cmd *cli.Command) (models.ContactRef, error) {
	ref := models.ContactRef{
		Email: cmd.String("email"),
		ID:    cmd.Int64("id"),
	}
	if err := ref.Validate(); err != nil {
		return ref, fmt.Errorf("%w: %v", shared.ErrMissingArgument, err)
	}
	return ref, nil
}

// ContactGet fetches a contact and prints it as JSON.
func (r *Runner) ContactGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	ref, err := contactRef(cmd)
	if err != nil {
		return err
	}

	r.logger.Infof("fetching contact %v", ref.String())

	contact, err := r.crm.GetContact(ctx, ref)
	if err != nil {
		return err
	}

	return r.writeJSON(contact, cmd.Bool("pretty"))
}

// ContactCreate creates a contact with optional initial tags and lists.
func (r *Runner) ContactCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	in := models.NewContact{
		Email:     cmd.String("email"),
		FirstName: cmd.String("first-name"),
		LastName:  cmd.String("last-name"),
		Status:    cmd.String("status"),
	}

	if raw := cmd.String("tags"); raw != "" {
		ids, err := membership.ParseIDs(raw)
		if err != nil {
			return fmt.Errorf("%w: --tags: %v", shared.ErrInvalidInput, err)
		}
		in.Tags = ids
	}
	if raw := cmd.String("lists"); raw != "" {
		ids, err := membership.ParseIDs(raw)
		if err != nil {
			return fmt.Errorf("%w: --lists: %v", shared.ErrInvalidInput, err)
		}
		in.Lists = ids
	}

	r.logger.Infof("creating contact %v", in.Email)

	response, err := r.crm.CreateContact(ctx, in)
	if err != nil {
		return err
	}

	return r.writeJSON(response, true)
}

// ContactDelete resolves the contact first, then deletes by numeric ID.
func (r *Runner) ContactDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	ref, err := contactRef(cmd)
	if err != nil {
		return err
	}

	contact, err := r.crm.GetContact(ctx, ref)
	if err != nil {
		return err
	}

	r.logger.Infof("deleting contact %v (ID %v)", contact.Email, contact.ID)

	response, err := r.crm.DeleteContact(ctx, contact.ID)
	if err != nil {
		return err
	}

	return r.writeJSON(response, true)
}

// ContactTags replaces or appends a contact's tags.
func (r *Runner) ContactTags(ctx context.Context, cmd *cli.Command) error {
	return r.updateMemberships(ctx, cmd, membership.Tags)
}

// ContactLists replaces or appends a contact's lists.
func (r *Runner) ContactLists(ctx context.Context, cmd *cli.Command) error {
	return r.updateMemberships(ctx, cmd, membership.Lists)
}

func (r *Runner) updateMemberships(ctx context.Context, cmd *cli.Command, kind membership.Kind) error {
	if err := r.requireService(); err != nil {
		return err
	}

	ref, err := contactRef(cmd)
	if err != nil {
		return err
	}

	requested, err := membership.ParseIDs(cmd.String(kind.String()))
	if err != nil {
		return fmt.Errorf("%w: --%s: %v", shared.ErrInvalidInput, kind, err)
	}

	mode := membership.ModeFor(cmd.Bool("append"))
	r.logger.Infof("updating %v for %v in %v mode", kind, ref.String(), mode)

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
		close(done)
	}()

	result, err := r.engine.UpdateMemberships(ctx, progress, ref, kind, requested, mode)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if !result.Changed() {
		r.writePlain("No changes: %s already match for %s\n", kind, ref.String())
		return nil
	}

	r.writePlain("Updated %s for %s\n", kind, ref.String())
	if len(result.Plan.Attach) > 0 {
		r.writePlain("  Attached: %v\n", result.Plan.Attach)
	}
	if len(result.Plan.Detach) > 0 {
		r.writePlain("  Detached: %v\n", result.Plan.Detach)
	}
	r.writePlain("  Final: %v\n", result.Final)

	return nil
}
