package models

import "fmt"

// Taxonomy represents a tag or a list. FluentCRM models both identically.
type Taxonomy struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Contact represents a FluentCRM subscriber with its attached taxonomies.
type Contact struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Status    string     `json:"status"`
	Tags      []Taxonomy `json:"tags"`
	Lists     []Taxonomy `json:"lists"`
}

// TagIDs returns the contact's attached tag identifiers.
func (c *Contact) TagIDs() []int64 {
	return taxonomyIDs(c.Tags)
}

// ListIDs returns the contact's attached list identifiers.
func (c *Contact) ListIDs() []int64 {
	return taxonomyIDs(c.Lists)
}

func taxonomyIDs(ts []Taxonomy) []int64 {
	ids := make([]int64, 0, len(ts))
	for _, t := range ts {
		ids = append(ids, t.ID)
	}
	return ids
}

// ContactRef references a contact by email or numeric ID. Exactly one field must be set.
type ContactRef struct {
	Email string
	ID    int64
}

// Validate checks that exactly one of email or ID is set.
func (r ContactRef) Validate() error {
	if (r.Email == "") == (r.ID == 0) {
		return fmt.Errorf("exactly one of email or id must be provided")
	}
	return nil
}

// String returns the search term used in user-facing messages.
func (r ContactRef) String() string {
	if r.Email != "" {
		return r.Email
	}
	return fmt.Sprintf("%d", r.ID)
}

// NewContact is the creation payload for POST subscribers.
//
// Status defaults to "subscribed" at the service layer when empty.
type NewContact struct {
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Status    string  `json:"status"`
	Tags      []int64 `json:"tags,omitempty"`
	Lists     []int64 `json:"lists,omitempty"`
}

// SubscriberPatch is the attach/detach delta sent via PUT subscribers/{id}.
type SubscriberPatch struct {
	AttachTags  []int64 `json:"attach_tags,omitempty"`
	DetachTags  []int64 `json:"detach_tags,omitempty"`
	AttachLists []int64 `json:"attach_lists,omitempty"`
	DetachLists []int64 `json:"detach_lists,omitempty"`
}

// Empty reports whether the patch carries no changes.
func (p SubscriberPatch) Empty() bool {
	return len(p.AttachTags) == 0 && len(p.DetachTags) == 0 &&
		len(p.AttachLists) == 0 && len(p.DetachLists) == 0
}
