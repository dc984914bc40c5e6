// Package order provides the Order aggregate of the logistics workflow.
//
// The package includes:
//   - Order: the aggregate root holding status, driver assignment, warehouse
//     location, attempt counters and the last exception
//   - Status: the lifecycle enum and its transition graph
//   - ReasonCode: the reasons accepted for failures, holds, cancellations and returns
//
// Key business rules:
//   - Status changes follow the transition graph in status.go
//   - delivered, returned and cancelled are final
//   - Only pending and exception orders can be assigned to a driver
package order
