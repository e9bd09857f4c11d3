package services

import (
	"context"

	"github.com/desertthunder/fluentctl/internal/models"
)

// Service defines the operations the CLI performs against the remote CRM.
type Service interface {
	// GetContact retrieves a single contact by email or numeric ID.
	// Returns [shared.ErrContactNotFound] when no contact matches.
	GetContact(ctx context.Context, ref models.ContactRef) (*models.Contact, error)

	// CreateContact creates a contact with optional tag and list attachments.
	CreateContact(ctx context.Context, in models.NewContact) (any, error)

	// DeleteContact deletes a contact by its resolved numeric ID.
	DeleteContact(ctx context.Context, id int64) (any, error)

	// UpdateSubscriber applies an attach/detach membership delta to a contact.
	UpdateSubscriber(ctx context.Context, id int64, patch models.SubscriberPatch) (any, error)

	// Tags retrieves all tags, following pagination when the API paginates.
	Tags(ctx context.Context) ([]models.Taxonomy, error)

	// CreateTag creates a new tag.
	CreateTag(ctx context.Context, title, slug string) (any, error)

	// DeleteTag deletes a tag by ID.
	DeleteTag(ctx context.Context, id int64) (any, error)

	// Lists retrieves all lists, following pagination when the API paginates.
	Lists(ctx context.Context) ([]models.Taxonomy, error)

	// CreateList creates a new list.
	CreateList(ctx context.Context, title, slug string) (any, error)

	// UpdateList updates a list's title and/or slug. At least one must be non-empty.
	UpdateList(ctx context.Context, id int64, title, slug string) (any, error)

	// DeleteList deletes a list by ID.
	DeleteList(ctx context.Context, id int64) (any, error)

	// Name returns the name of the remote service.
	Name() string
}
