// Package services defines the [Service] interface for the remote CRM and implements it for FluentCRM.
//
// # Service Interface
//
// All remote operations the CLI performs go through a single abstraction so
// command handlers and the task engine can be tested against a double.
//
// # FluentCRM Implementation
//
// [FluentService] talks to the fluent-crm/v2 REST namespace of a WordPress
// site using HTTP Basic credentials (application passwords). Every request
// carries an X-Request-ID header and passes through a shared rate limiter.
//
// Listing endpoints (tags, lists) return either a plain array or a paginated
// envelope with a next_page_url; [FluentService] follows pagination to
// exhaustion and returns the full set.
//
// # Error Handling
//
// Non-2xx responses surface as [*StatusError], which unwraps to
// [shared.ErrAPIRequest] and preserves the response body verbatim.
// A 404 on a subscriber lookup maps to [shared.ErrContactNotFound].
package services
