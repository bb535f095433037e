// Package models defines the book record and the storage contract for the shelf catalog.
//
// The package contains:
//   - [Book] : the sole entity, with normalization and validation helpers
//   - [Criteria] : the find/count predicate, built from a [Field], a query and a [MatchMode]
//   - [Statistics] : aggregate totals computed from a single snapshot
//   - [Store] : the capability set every storage backend implements
//
// Text fields are normalized exactly once, when a record is written; a [Store] returns records exactly as stored.
package models
