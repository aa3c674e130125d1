// Package postgres provides PostgreSQL implementations of the store
// interfaces. Implementations accept a store.DBTX, so the same code runs
// against a plain connection or inside a transaction created by
// store.RunInTransaction.
package postgres
