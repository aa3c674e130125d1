// Package store defines the persistence interfaces for decks and cards,
// the sentinel errors shared by their implementations, and the
// transaction helper used for multi-record mutations (cascading deck
// deletion, bulk card insert).
//
// Every read and write is scoped to an owner identifier. An operation
// that targets a record owned by a different caller fails with
// ErrNotFound; ownership and existence are deliberately
// indistinguishable so that callers cannot probe for other users'
// records.
package store
