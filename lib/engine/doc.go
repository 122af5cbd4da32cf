// Package engine executes bookstore command lines against the stores.
//
// An Engine owns no state of its own: the session stack lives in the account
// store, the catalog in the book store and the transaction and audit logs in
// the ledger store. Process handles one line:
//
//  1. blank lines are ignored
//  2. if the active privilege is at least 1 the raw line is appended to the
//     audit log, whether or not the command succeeds
//  3. the line is parsed (see package command)
//  4. the privilege of the active identity is checked against the command
//  5. the command is dispatched to the stores and its output formatted
//
// Every failure in steps 3 to 5 yields the single rejection marker "Invalid";
// the reason is returned in Result.Err and logged at debug level.
//
// Run reads lines from an io.Reader until EOF, quit or exit, or until the
// context is done, and writes the output of every line to an io.Writer.
//
// Thread-safety: an Engine must be used by one goroutine at a time, like the
// stores behind it.
package engine
