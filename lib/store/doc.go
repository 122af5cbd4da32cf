// Package store defines the contracts of the three persistent stores of
// dBookstore and the error system they share.
//
// The package focuses on:
//   - Interfaces (IAccountStore, IBookStore, ILedgerStore) the command engine depends on
//   - The record types persisted by the stores (Account, Book, Transaction, AuditEntry)
//   - A unified Error type with typed return codes
//
// Key Components:
//
//   - IAccountStore: Accounts indexed by userID plus the session stack of nested
//     logins. The top frame is the active identity and decides the privilege of
//     every command.
//
//   - IBookStore: The catalog indexed by ISBN with multi-field lookup and keyword
//     matching. Books are created by selecting an unseen ISBN and are never deleted.
//
//   - ILedgerStore: Append-only transaction and audit history with aggregate reports.
//
//   - Error System: Every precondition failure (unknown key, duplicate key,
//     insufficient privilege or stock) is returned as a *Error carrying a RetCode.
//     Stores never panic on bad input. I/O failures are reported as RetCInternalError.
//
// Persistence:
//
//	All stores are write-through. An accepted mutation updates the in-memory index
//	and persists it before the method returns. Accounts and books rewrite their
//	whole file ordered by key, ledger files are appended to.
//
// Implementations:
//
//	- Account Store: "github.com/ValentinKolb/dBookstore/lib/store/account"
//	- Book Store: "github.com/ValentinKolb/dBookstore/lib/store/book"
//	- Ledger Store: "github.com/ValentinKolb/dBookstore/lib/store/ledger"
//
// Thread-safety: The stores are designed for a single goroutine processing one
// command at a time. The indexes use concurrent maps, but the session stack and
// the file writes are not synchronized.
package store
