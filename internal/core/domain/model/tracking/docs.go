// Package tracking defines the vocabulary of workflow actions and the
// immutable TrackingEvent audit record written for every order an action touches.
//
// Events are append-only. They are never updated or deleted, and the history of
// an order is its events ordered by occurrence time.
package tracking
