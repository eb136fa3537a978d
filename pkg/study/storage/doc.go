// Package storage provides backends implementing the study.Storage
// interface.
//
// Two backends are available:
//
//   - SQLiteStorage: the production backend. Records are kept in a single
//     table keyed by (collection, id) with core fields and the open data
//     payload stored as JSON columns. WAL mode is enabled by default for
//     concurrent readers during long export scans.
//
//   - MemoryStorage: an in-memory backend for testing. It preserves the
//     same (createdAt, id) listing order as the SQLite backend so that
//     pagination behaves identically in tests.
package storage
