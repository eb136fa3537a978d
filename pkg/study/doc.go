// Package study defines the domain model for Meridian study data: the
// record collections produced by running behavioral experiments (batches,
// games, players, rounds, stages and their join records).
//
// # Records
//
// Every collection holds records with two halves:
//
//   - Core fields: a fixed, per-collection set of named values (timestamps,
//     identifiers, counters, id lists).
//   - Data payload: an open key/value map written by experiment code at
//     runtime. Its key set is not known until the records are scanned.
//
// # Storage
//
// The Storage interface is the collection source consumed by the export
// pipeline. Implementations must return records in a stable order
// (created-at, then id) so that offset pagination reproduces the same
// sequence as a single unbounded read. Two backends exist:
//
//   - storage.SQLiteStorage - production backend (WAL mode)
//   - storage.MemoryStorage - deterministic backend for tests
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
//	    Path: "data/study.db",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	page, err := store.List(ctx, "players", &study.Query{Limit: 1000})
package study
