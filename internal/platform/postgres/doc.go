// Package postgres provides PostgreSQL implementations of the application's
// store interfaces. It contains the database-specific code for persisting
// and retrieving domain entities.
package postgres
