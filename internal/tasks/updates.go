package tasks

import (
	"fmt"

	"github.com/desertthunder/fluentctl/internal/membership"
	"github.com/desertthunder/fluentctl/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchContact Phase = iota
	Reconcile
	PushUpdate
	FetchTags
	FetchLists
	WriteFiles
)

func (p Phase) String() string {
	switch p {
	case FetchContact:
		return "fetch_contact"
	case Reconcile:
		return "reconcile"
	case PushUpdate:
		return "push_update"
	case FetchTags:
		return "fetch_tags"
	case FetchLists:
		return "fetch_lists"
	case WriteFiles:
		return "write_files"
	default:
		return ""
	}
}

func fetchContactUpdate(ref models.ContactRef) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchContact,
		Step:    1,
		Total:   3,
		Message: fmt.Sprintf("Fetching contact %s...", ref.String()),
	}
}

func reconcileUpdate(kind membership.Kind, plan membership.Plan) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Reconcile,
		Step:    2,
		Total:   3,
		Message: fmt.Sprintf("Reconciling %s: attach %d, detach %d", kind, len(plan.Attach), len(plan.Detach)),
		Data:    plan,
	}
}

func noChangeUpdate(kind membership.Kind) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Reconcile,
		Step:    2,
		Total:   3,
		Message: fmt.Sprintf("No %s changes required", kind),
	}
}

func pushUpdate(contactID int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PushUpdate,
		Step:    3,
		Total:   3,
		Message: fmt.Sprintf("Updating subscriber %d...", contactID),
	}
}

func fetchTaxonomyUpdate(phase Phase, step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching %s...", name),
	}
}

func wroteFileUpdate(step, total int, file string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Wrote %s (%d rows)", step, total, file, count),
	}
}
