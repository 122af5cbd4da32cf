// Package ledger implements store.ILedgerStore: the append-only transaction
// history and the audit log of authenticated command lines.
//
// Both files only ever grow. New records are appended at the end of their file,
// so unlike the account and book stores the ledger never rewrites a file.
// The history is read once on Open and kept in memory for reporting.
//
// Audit lines longer than the fixed operation field are truncated rather than
// rejected, since recording an audit entry must not fail on user input.
package ledger
