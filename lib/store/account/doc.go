// Package account implements store.IAccountStore on top of a record.FileStore.
//
// Accounts are indexed by userID in memory and the whole index is rewritten,
// ordered by userID, after every mutation. The session stack is process state
// only and is never persisted: every process starts without a session.
//
// On first use the store bootstraps the root account (userID "root",
// password "sjtu", privilege 7) so that exactly one root account always exists.
package account
