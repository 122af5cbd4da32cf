// Package book implements store.IBookStore, the catalog of the bookstore.
//
// Books are indexed by ISBN in memory; every mutation rewrites the book file
// ordered by ISBN. A book is created as a zero valued placeholder when an
// unseen ISBN is selected and is never deleted. Its ISBN may be renamed by
// Modify, which moves the record to the new key.
//
// Invariants kept by the store:
//   - ISBNs are unique
//   - Price and Quantity are never negative
//   - Keyword is empty or a tag set without empty or duplicate tags
package book
