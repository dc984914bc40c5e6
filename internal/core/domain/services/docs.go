// Package services provides domain services that span several aggregates of
// the logistics workflow.
//
// The package includes:
//   - TransitionAuthority: the single source of truth for which role may record
//     which action, which status an action leads to and whether a batch of
//     orders may take it
//   - Plan: the validated change returned by TransitionAuthority, applied to
//     each order and turned into its tracking event
package services
