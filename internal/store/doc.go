// Package store provides file-backed storage for the absence ledger.
//
// Records are filed by calendar date, one JSON file per date, sharded into one
// directory per year:
//
//	<root>/absences/<year>/<YYYY-MM-DD>.json
//
// Each file holds a pretty-printed JSON array of records.
//
// # Critical Patterns
//
// CP-1: Missing Means Empty
//   - A date without a file has an empty collection; Get returns an empty
//     slice, never an error.
//   - Removing the last record of a date deletes its file. Empty arrays are
//     never left on disk.
//
// CP-2: Identifier Ordering
//   - Every write re-sorts the date's collection by ID ascending (creation
//     order), and Get sorts again on read. Disambiguation and display depend on
//     this order; there is no separate index.
//
// CP-3: Filing Invariant
//   - A record is always filed under its own Date. Update refuses a record
//     whose Date differs from the target date.
//
// CP-4: Read-Modify-Write per Date
//   - Each mutation loads one date's file, changes it, and rewrites it. Dates
//     never contend with each other.
//   - No locking: two processes touching the same date concurrently can lose
//     an update. The store assumes a single user driving a single process.
//
// # Errors
//
// Failures surface as *Error with a Code (DirectoryAccess, ReadFailure,
// WriteFailure, SerializationFailure). Nothing is retried.
package store
