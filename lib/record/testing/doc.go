// Package testing provides a standardized test suite for record.Codec
// implementations stored through a record.FileStore.
//
// Every record type of dBookstore (accounts, books, transactions, audit entries)
// runs this suite from its own package tests:
//
//	func TestCodec(t *testing.T) {
//		rectesting.RunCodecTests(t, "Account", accountCodec{}, sampleAccounts)
//	}
//
// The suite checks round trips through a real file, positional reads and
// overwrites, appends, tolerance of a truncated trailing record and that the
// file size is always a multiple of the codec width.
package testing
