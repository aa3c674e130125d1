// Package service contains the application services that orchestrate
// domain entities and stores: owner-scoped deck and card management,
// including the multi-record mutations (cascading deck deletion, bulk
// card import) that must run inside a single transaction.
package service
