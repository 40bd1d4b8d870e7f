// Package store provides SQLite-backed durable storage for the player
// profile and the run history.
//
// # Checkpointed Writes
//
// The engine writes only at checkpoints (stage clear, game over, purchase,
// daily claim). SaveProfile rewrites the whole profile record inside one
// transaction, so a crash leaves either the previous or the new profile,
// never a mix.
//
// # Idempotency
//
//   - profile keys upsert with ON CONFLICT(key) DO UPDATE
//   - runs upsert by run id; a revived run that ends twice keeps one row
//     and its original position in the history
//
// # Deterministic Reads
//
//   - LoadProfile returns every stored key; decoding and defaulting is
//     economy.DecodeProfile's job
//   - run listings order by seq, ties broken by id COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode, synchronous=NORMAL
//   - busy_timeout=5000: a second process (knifehit runs during play)
//     waits for the lock instead of failing
//   - migrations are keyed on PRAGMA user_version
package store
