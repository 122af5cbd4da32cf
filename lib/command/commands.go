package command

import "github.com/ValentinKolb/dBookstore/lib/store"

// Command is a validated command line.
type Command interface {
	// Name returns the command keyword (e.g. "su").
	Name() string
	// MinPrivilege returns the privilege required to run the command.
	MinPrivilege() store.Privilege
}

// --------------------------------------------------------------------------
// Session and Account Commands
// --------------------------------------------------------------------------

// Quit terminates the process (quit or exit).
type Quit struct{}

// Su logs in as UserID. Password is empty if omitted.
type Su struct {
	UserID   string
	Password string
}

// Logout pops the active session.
type Logout struct{}

// Register creates a customer account.
type Register struct {
	UserID      string
	Password    string
	DisplayName string
}

// Passwd changes a password. CurrentPassword is empty if omitted.
type Passwd struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// UserAdd creates an account with an explicit privilege.
type UserAdd struct {
	UserID      string
	Password    string
	Privilege   store.Privilege
	DisplayName string
}

// Delete removes an account.
type Delete struct {
	UserID string
}

func (Quit) Name() string     { return "quit" }
func (Su) Name() string       { return "su" }
func (Logout) Name() string   { return "logout" }
func (Register) Name() string { return "register" }
func (Passwd) Name() string   { return "passwd" }
func (UserAdd) Name() string  { return "useradd" }
func (Delete) Name() string   { return "delete" }

func (Quit) MinPrivilege() store.Privilege     { return store.PrivGuest }
func (Su) MinPrivilege() store.Privilege       { return store.PrivGuest }
func (Logout) MinPrivilege() store.Privilege   { return store.PrivCustomer }
func (Register) MinPrivilege() store.Privilege { return store.PrivGuest }
func (Passwd) MinPrivilege() store.Privilege   { return store.PrivCustomer }
func (UserAdd) MinPrivilege() store.Privilege  { return store.PrivStaff }
func (Delete) MinPrivilege() store.Privilege   { return store.PrivRoot }

// --------------------------------------------------------------------------
// Book Commands
// --------------------------------------------------------------------------

// ShowBooks lists the catalog, optionally filtered by one field.
type ShowBooks struct {
	Filter store.BookFilter
}

// Buy sells Quantity copies of ISBN.
type Buy struct {
	ISBN     string
	Quantity int64
}

// Select selects (and if needed creates) a book for the active session.
type Select struct {
	ISBN string
}

// Modify edits the selected book.
type Modify struct {
	Patch store.BookPatch
}

// Import restocks the selected book.
type Import struct {
	Quantity  int64
	TotalCost float64
}

func (ShowBooks) Name() string { return "show" }
func (Buy) Name() string       { return "buy" }
func (Select) Name() string    { return "select" }
func (Modify) Name() string    { return "modify" }
func (Import) Name() string    { return "import" }

func (ShowBooks) MinPrivilege() store.Privilege { return store.PrivCustomer }
func (Buy) MinPrivilege() store.Privilege       { return store.PrivCustomer }
func (Select) MinPrivilege() store.Privilege    { return store.PrivStaff }
func (Modify) MinPrivilege() store.Privilege    { return store.PrivStaff }
func (Import) MinPrivilege() store.Privilege    { return store.PrivStaff }

// --------------------------------------------------------------------------
// Ledger Commands
// --------------------------------------------------------------------------

// ShowFinance prints the summary of the last Count transactions (-1 = all).
type ShowFinance struct {
	Count int
}

// Log prints the full audit log.
type Log struct{}

// ReportKind selects the report printed by Report.
type ReportKind string

const (
	ReportFinance  ReportKind = "finance"
	ReportEmployee ReportKind = "employee"
)

// Report prints an aggregate report.
type Report struct {
	Kind ReportKind
}

func (ShowFinance) Name() string { return "show finance" }
func (Log) Name() string         { return "log" }
func (Report) Name() string      { return "report" }

func (ShowFinance) MinPrivilege() store.Privilege { return store.PrivRoot }
func (Log) MinPrivilege() store.Privilege         { return store.PrivRoot }
func (Report) MinPrivilege() store.Privilege      { return store.PrivRoot }
