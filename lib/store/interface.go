package store

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Interface Definitions
// --------------------------------------------------------------------------

// IAccountStore manages accounts and the session stack of nested logins.
// The top frame of the stack is the active identity; its privilege gates every
// other command. All mutations are persisted before the method returns.
type IAccountStore interface {
	// Login pushes userID onto the session stack.
	// A wrong password is accepted only if the active privilege is strictly higher
	// than the privilege of the target account. An empty password is not checked.
	Login(userID, password string) (err error)
	// Logout pops the active session frame.
	Logout() (err error)
	// Register creates a customer account (privilege 1).
	Register(userID, password, displayName string) (err error)
	// ChangePassword sets a new password. currentPassword may only be wrong or
	// empty if the active privilege is root.
	ChangePassword(userID, currentPassword, newPassword string) (err error)
	// AddAccount creates an account whose privilege must be strictly lower than the active privilege.
	AddAccount(userID, password string, privilege Privilege, displayName string) (err error)
	// DeleteAccount removes an account that is not referenced by any session frame.
	DeleteAccount(userID string) (err error)

	// Privilege returns the privilege of the active identity (PrivGuest without session).
	Privilege() (privilege Privilege)
	// CurrentUser returns the active userID ("" without session).
	CurrentUser() (userID string)
	// Selected returns the ISBN selected in the active session frame.
	Selected() (isbn string)
	// Select binds isbn to the active session frame. No-op without session.
	Select(isbn string)
	// RenameSelection replaces oldISBN by newISBN in every session frame.
	RenameSelection(oldISBN, newISBN string)

	// Get returns a copy of the account with the given id.
	Get(userID string) (account Account, loaded bool)
	// All returns every account ordered by userID.
	All() (accounts []Account)
}

// IBookStore manages the catalog. Books are created by Select and never deleted.
type IBookStore interface {
	// Select creates a zero valued book for an unseen isbn. It is a no-op otherwise.
	Select(isbn string) (err error)
	// Modify applies all fields set in patch to the book with the given isbn.
	Modify(isbn string, patch BookPatch) (err error)
	// Import adds quantity copies to the stock.
	Import(isbn string, quantity int64) (err error)
	// Buy removes quantity copies from the stock and returns price * quantity.
	Buy(isbn string, quantity int64) (cost float64, err error)
	// Query returns the books matching filter ordered by ISBN.
	Query(filter BookFilter) (books []Book, err error)
	// Get returns a copy of the book with the given isbn.
	Get(isbn string) (book Book, loaded bool)
}

// ILedgerStore holds the append-only transaction and audit history.
type ILedgerStore interface {
	// RecordTransaction appends a transaction.
	RecordTransaction(amount float64, isIncome bool) (err error)
	// RecordAudit appends an audit entry for userID.
	RecordAudit(userID, operation string) (err error)
	// FinanceSummary sums the last count transactions (count < 0 means all).
	FinanceSummary(count int) (summary FinanceSummary, err error)
	// FinanceReport renders the totals of all transactions.
	FinanceReport() (report string)
	// EmployeeReport renders the number of audited operations per user.
	EmployeeReport() (report string)
	// FullLog renders every audit entry in insertion order.
	FullLog() (log string)

	// Transactions returns a snapshot of all transactions.
	Transactions() (transactions []Transaction)
	// Audit returns a snapshot of all audit entries.
	Audit() (entries []AuditEntry)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new Error with the given code and a formatted message.
func NewError(code RetCode, format string, args ...interface{}) *Error {
	return &Error{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Internal wraps an I/O failure of a store.
func Internal(err error) *Error {
	return &Error{
		Code: RetCInternalError,
		Msg:  err.Error(),
	}
}

// CodeOf returns the RetCode carried by err.
// nil maps to RetCSuccess, errors that are not *Error map to RetCInternalError.
func CodeOf(err error) RetCode {
	if err == nil {
		return RetCSuccess
	}
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return RetCInternalError
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess           RetCode = iota // 0: Command executed successfully.
	RetCInternalError                    // 1: Command failed due to an internal (I/O) error.
	RetCInvalidOperation                 // 2: Operation not allowed in the current state.
	RetCNotFound                         // 3: Referenced key does not exist.
	RetCAlreadyExists                    // 4: Key is already taken.
	RetCPermissionDenied                 // 5: Active privilege is insufficient.
	RetCInsufficientStock                // 6: Not enough copies in stock.
	RetCBadArgument                      // 7: Argument violates a field constraint.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCInvalidOperation:
		return "InvalidOperation"
	case RetCNotFound:
		return "NotFound"
	case RetCAlreadyExists:
		return "AlreadyExists"
	case RetCPermissionDenied:
		return "PermissionDenied"
	case RetCInsufficientStock:
		return "InsufficientStock"
	case RetCBadArgument:
		return "BadArgument"
	default:
		return "Unknown"
	}
}
