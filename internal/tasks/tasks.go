package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/fluentctl/internal/membership"
	"github.com/desertthunder/fluentctl/internal/models"
	"github.com/desertthunder/fluentctl/internal/services"
	"github.com/desertthunder/fluentctl/internal/shared"
)

// MembershipResult contains all data from a membership update operation.
type MembershipResult struct {
	Contact   *models.Contact // Contact as fetched before the update
	Current   []int64         // Membership IDs before the update
	Requested []int64         // Parsed IDs from the command line
	Final     []int64         // Reconciled membership after applying the plan
	Plan      membership.Plan // Attach/detach delta pushed to the API
	Response  any             // Raw API response, nil when no update was needed
}

// Changed reports whether the operation pushed an update to the API.
func (r *MembershipResult) Changed() bool {
	return !r.Plan.Empty()
}

// SyncEngine defines multi-step operations against the CRM.
type SyncEngine interface {
	// UpdateMemberships reconciles a contact's tag or list membership against
	// the requested set and pushes the minimal attach/detach delta.
	UpdateMemberships(ctx context.Context, progress chan<- ProgressUpdate, ref models.ContactRef, kind membership.Kind, requested []int64, mode membership.Mode) (*MembershipResult, error)

	// Export fetches all tags and lists and writes them as CSV files with a manifest.
	Export(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error)
}

// CRMEngine implements SyncEngine against a single CRM service.
type CRMEngine struct {
	crm services.Service
}

// NewCRMEngine creates an engine backed by the provided service.
func NewCRMEngine(crm services.Service) *CRMEngine {
	return &CRMEngine{crm: crm}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CRMEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// UpdateMemberships fetches the contact, reconciles its current membership with
// the requested set under the given mode, and pushes only the delta.
//
// Replace mode makes the membership exactly the requested set; append mode only
// ever adds. A plan with no changes skips the API write entirely.
func (e *CRMEngine) UpdateMemberships(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	ref models.ContactRef,
	kind membership.Kind,
	requested []int64,
	mode membership.Mode,
) (*MembershipResult, error) {
	if e.crm == nil {
		return nil, fmt.Errorf("%w: CRM service not initialized", shared.ErrServiceUnavailable)
	}
	if len(requested) == 0 {
		return nil, fmt.Errorf("%w: at least one %s ID is required", shared.ErrInvalidInput, kind)
	}

	e.sendProgress(progress, fetchContactUpdate(ref))

	contact, err := e.crm.GetContact(ctx, ref)
	if err != nil {
		return nil, err
	}

	current := contact.TagIDs()
	if kind == membership.Lists {
		current = contact.ListIDs()
	}

	result := &MembershipResult{
		Contact:   contact,
		Current:   current,
		Requested: requested,
		Final:     membership.Reconcile(current, requested, mode),
		Plan:      membership.PlanUpdate(current, requested, mode),
	}

	if result.Plan.Empty() {
		e.sendProgress(progress, noChangeUpdate(kind))
		return result, nil
	}

	e.sendProgress(progress, reconcileUpdate(kind, result.Plan))

	patch := models.SubscriberPatch{}
	switch kind {
	case membership.Tags:
		patch.AttachTags = result.Plan.Attach
		patch.DetachTags = result.Plan.Detach
	case membership.Lists:
		patch.AttachLists = result.Plan.Attach
		patch.DetachLists = result.Plan.Detach
	}

	e.sendProgress(progress, pushUpdate(contact.ID))

	response, err := e.crm.UpdateSubscriber(ctx, contact.ID, patch)
	if err != nil {
		return result, fmt.Errorf("failed to update subscriber %d: %w", contact.ID, err)
	}

	result.Response = response
	return result, nil
}
