// Package tasks implements multi-step CRM operations on top of the service layer.
//
// The core abstraction is SyncEngine, which orchestrates membership updates
// (fetch contact, reconcile, push the attach/detach delta) and bulk exports.
// Operations emit progress updates via channels for non-blocking status
// reporting to the CLI/UI layers.
package tasks
