// Package database provides PostgreSQL connection pool management for the
// postgres grid sink.
package database
