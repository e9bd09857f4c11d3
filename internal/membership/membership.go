// Package membership implements the reconciliation rules for a contact's tag and list associations.
//
// A membership update takes the contact's current association set and a
// requested set parsed from the command line, and computes the final set
// under one of two modes:
//   - [Replace] : the final set is exactly the requested set
//   - [Append] : the final set is the union of current and requested
//
// [Reconcile] is pure set arithmetic with no I/O; [PlanUpdate] derives the
// minimal attach/detach delta the API needs to move from the current set to
// the reconciled one.
package membership

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Mode selects how requested identifiers merge into existing associations.
type Mode int

const (
	// Replace drops any existing association not in the requested set.
	Replace Mode = iota
	// Append unions the requested set into existing associations.
	Append
)

func (m Mode) String() string {
	switch m {
	case Replace:
		return "replace"
	case Append:
		return "append"
	default:
		return ""
	}
}

// ModeFor maps the --append flag to a Mode. Absence of the flag selects replace.
func ModeFor(appendFlag bool) Mode {
	if appendFlag {
		return Append
	}
	return Replace
}

// Kind identifies which association family an update targets.
type Kind int

const (
	Tags Kind = iota
	Lists
)

func (k Kind) String() string {
	switch k {
	case Tags:
		return "tags"
	case Lists:
		return "lists"
	default:
		return ""
	}
}

// ParseIDs parses a comma-separated list of integer identifiers.
//
// Whitespace around each token is trimmed. An empty input, an empty segment,
// or a non-integer token is an error. Duplicates collapse; the result is sorted.
func ParseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty identifier list")
	}

	seen := make(map[int64]struct{})
	var ids []int64
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("empty segment in identifier list %q", raw)
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid identifier %q: must be an integer", token)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Reconcile computes the final association set for a contact.
//
// Replace returns exactly the requested set. Append returns the union of
// current and requested; no existing association is ever removed by an
// append. The result is deduplicated and sorted.
func Reconcile(current, requested []int64, mode Mode) []int64 {
	final := make(map[int64]struct{}, len(current)+len(requested))

	if mode == Append {
		for _, id := range current {
			final[id] = struct{}{}
		}
	}
	for _, id := range requested {
		final[id] = struct{}{}
	}

	return sortedKeys(final)
}

// Plan is the attach/detach delta derived from a reconciliation.
type Plan struct {
	Attach []int64
	Detach []int64
}

// Empty reports whether applying the plan would change nothing.
func (p Plan) Empty() bool {
	return len(p.Attach) == 0 && len(p.Detach) == 0
}

// PlanUpdate derives the API delta that moves current to Reconcile(current, requested, mode).
//
// Attach holds reconciled ids not already present; Detach holds current ids
// absent from the reconciled set. Append mode never detaches.
func PlanUpdate(current, requested []int64, mode Mode) Plan {
	final := Reconcile(current, requested, mode)

	currentSet := make(map[int64]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	finalSet := make(map[int64]struct{}, len(final))
	for _, id := range final {
		finalSet[id] = struct{}{}
	}

	attach := make(map[int64]struct{})
	for id := range finalSet {
		if _, ok := currentSet[id]; !ok {
			attach[id] = struct{}{}
		}
	}
	detach := make(map[int64]struct{})
	for id := range currentSet {
		if _, ok := finalSet[id]; !ok {
			detach[id] = struct{}{}
		}
	}

	return Plan{Attach: sortedKeys(attach), Detach: sortedKeys(detach)}
}

func sortedKeys(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
