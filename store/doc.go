// Package store groups the snapshot store backends for spool queues.
//
// Every backend implements the spool.Store interface: Load reads the
// persisted snapshot for a queue, Save overwrites it. The
// built-in file store (spool.NewFileStore) is the default; the
// subpackages provide alternatives:
//
//   - memory: in-process map, for tests and development
//   - redis: snapshot held in a Redis string key
//   - sqlite: snapshot row in SQLite via database/sql (modernc driver)
//   - bun: snapshot row in PostgreSQL via the Bun ORM
//
// Snapshots are whole-buffer writes (last writer wins), so a backend
// needs no transactional machinery beyond a single upsert.
package store
