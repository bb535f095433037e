// Package repositories implements the storage backends behind the shelf catalog.
//
// Both backends implement [models.Store]:
//   - [SQLStore] : a relational books table (SQLite or PostgreSQL). Every operation acquires its own
//     connection from the pool, runs as a single statement or transaction, and releases the connection
//     before returning.
//   - [FileStore] : an ordered in-memory list mirrored to a JSON or YAML document. The document is read
//     once when the store is opened and written back by [FileStore.Save] and [FileStore.Close]; a crash
//     loses unsaved changes. A missing or unreadable document opens as an empty catalog.
//
// [Open] selects the backend from [shared.Config].
package repositories
