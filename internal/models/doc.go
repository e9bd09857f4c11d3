// Package models defines the data transfer objects exchanged with the FluentCRM REST API.
//
// The types mirror the wire format of the fluent-crm/v2 endpoints:
//   - [Contact] : a subscriber record with its attached tags and lists
//   - [Taxonomy] : a tag or list record (both share the same shape)
//   - [NewContact] : creation payload for POST subscribers
//   - [SubscriberPatch] : attach/detach delta for PUT subscribers/{id}
//   - [ContactRef] : email-or-id reference used to locate a contact
//
// All types are plain value objects; no persistence or caching is attached to them.
package models
