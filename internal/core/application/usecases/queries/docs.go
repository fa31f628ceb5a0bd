// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read straight from the database and return views in which sender,
// receiver and ledger authors are resolved to display attributes.
package queries
