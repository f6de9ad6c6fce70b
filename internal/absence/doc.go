// Package absence defines the absence ledger's record model.
//
// An absence record is a logged non-work period (vacation, sick leave,
// overtime reduction, holiday, or a custom category) for a single calendar
// day. Records are addressed by a time-sortable identifier that is minted
// once, in NewRecord, and never recomputed.
//
// # Invariants
//
//   - ID is immutable after creation.
//   - Hours is never negative.
//   - Date equals the date under which the record is filed.
//
// # Identifiers
//
// IDs are UUIDv7 values. The high 48 bits hold the creation time in Unix
// milliseconds and the remaining bits (apart from version and variant) come
// from crypto/rand. The canonical hyphenated lowercase text form sorts in the
// same order as the raw bytes, so sorting by string or by Compare both yield
// creation order.
//
// # Edit validation
//
// Record implements the editor's document contract: Equal reports structural
// equality and Validate decides whether an edited copy may replace the
// original.
package absence
