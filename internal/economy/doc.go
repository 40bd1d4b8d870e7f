// Package economy owns the durable player profile and everything that
// changes it: coins, cosmetic skins, achievements and the daily streak.
//
// # Checkpoints
//
// The engine calls into an Economy only at checkpoints (stage clear, game
// over, purchase, daily check). Nothing here runs while a blade is in
// flight, so a crash between checkpoints can lose at most the current run.
//
// # Persistence
//
// Profiles cross the storage boundary as a flat Record (string keys and
// values). DecodeProfile recovers field by field: a missing or malformed
// field falls back to its default and is reported as a FieldError, the
// rest of the record is still used.
//
// # Identifiers
//
// Skin and achievement identifiers are NFC normalized and lower-cased on
// every path into the profile, so "Gold", "gold" and a decomposed
// spelling all name the same skin.
package economy
