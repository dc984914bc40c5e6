// Package user models the people acting on orders: their roles, the Actor
// resolved for each request and the User records drivers are picked from.
package user
