// Package record provides the fixed-width record file that every store of
// dBookstore persists through. It has no knowledge of accounts, books or
// ledger entries; callers describe their record layout with a Codec and the
// FileStore takes care of reading and writing whole records.
//
// The package focuses on:
//   - A generic FileStore[T] that never exposes partial records
//   - Codecs that pack a value into exactly Size() bytes
//   - Cursor helpers (Writer, Reader) so a codec reads like a declaration of its layout
//
// Key Components:
//
//   - Codec: Value-to-bytes mapping with a fixed width. Every field of a record
//     has a fixed capacity; strings are zero padded, numerics are little-endian.
//     Because all records of a file share one width, the byte offset of record i
//     is i * Size().
//
//   - FileStore: Persistence operations on a single file:
//     ReadAll (short trailing chunks are dropped silently), ReadAt (positional),
//     Write (append when index < 0, overwrite in place otherwise), Rewrite
//     (truncate and write sequentially) and Count.
//
// Note on Durability:
//   - Rewrite truncates the file before writing. It is not crash-atomic. This is
//     acceptable because a data directory is owned by exactly one process.
//   - Every write is flushed and synced before the call returns, so a completed
//     operation is never lost by a crash between two commands.
//
// Related Packages:
//
// The testing package (github.com/ValentinKolb/dBookstore/lib/record/testing) provides
// a standardized conformance suite for Codec implementations used with a FileStore.
package record
