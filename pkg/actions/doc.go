// Package actions dispatches row actions (edit, delete, preview, create) to
// caller callbacks or to dialogs bound to an entity type.
//
// Dialogs own their in-flight adapter request. A successful request is
// applied to the table view by identity; a failed one keeps the dialog open
// with the adapter's message and raises one notification.
package actions
