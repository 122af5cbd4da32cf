package store

// --------------------------------------------------------------------------
// Privilege
// --------------------------------------------------------------------------

// Privilege is the access level of an identity.
type Privilege int

const (
	PrivGuest    Privilege = 0 // no active session, never stored
	PrivCustomer Privilege = 1
	PrivStaff    Privilege = 3
	PrivRoot     Privilege = 7
)

// Valid reports whether p may be stored on an account.
func (p Privilege) Valid() bool {
	return p == PrivCustomer || p == PrivStaff || p == PrivRoot
}

// --------------------------------------------------------------------------
// Field Limits
// --------------------------------------------------------------------------

// Maximum lengths (in bytes) of the string fields of persisted records
const (
	MaxUserIDLen      = 30
	MaxPasswordLen    = 30
	MaxDisplayNameLen = 34
	MaxISBNLen        = 23
	MaxBookFieldLen   = 64 // name, author and the whole keyword field
	MaxOperationLen   = 255
)

// KeywordSeparator separates the tags of Book.Keyword.
const KeywordSeparator = "|"

// --------------------------------------------------------------------------
// Records
// --------------------------------------------------------------------------

// Account is a registered identity.
type Account struct {
	UserID      string    `yaml:"user_id"`
	Password    string    `yaml:"-"`
	DisplayName string    `yaml:"display_name"`
	Privilege   Privilege `yaml:"privilege"`
}

// Book is a catalog entry identified by its ISBN.
// Empty Name, Author or Keyword mean "unset".
type Book struct {
	ISBN     string  `yaml:"isbn"`
	Name     string  `yaml:"name"`
	Author   string  `yaml:"author"`
	Keyword  string  `yaml:"keyword"`
	Price    float64 `yaml:"price"`
	Quantity int64   `yaml:"quantity"`
}

// Transaction is an immutable ledger line. IsIncome is true for sales and
// false for import costs.
type Transaction struct {
	Amount   float64 `yaml:"amount"`
	IsIncome bool    `yaml:"is_income"`
}

// AuditEntry records one command line issued by an authenticated user.
type AuditEntry struct {
	UserID    string `yaml:"user_id"`
	Operation string `yaml:"operation"`
}

// --------------------------------------------------------------------------
// Book Queries and Patches
// --------------------------------------------------------------------------

// BookField selects the attribute a BookFilter matches on.
type BookField int

const (
	FieldNone BookField = iota // match every book
	FieldISBN
	FieldName
	FieldAuthor
	FieldKeyword // matches if Value equals any single tag
)

func (f BookField) String() string {
	switch f {
	case FieldNone:
		return "none"
	case FieldISBN:
		return "ISBN"
	case FieldName:
		return "name"
	case FieldAuthor:
		return "author"
	case FieldKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// BookFilter restricts a catalog query to one field.
type BookFilter struct {
	Field BookField
	Value string
}

// BookPatch holds the optional fields of a modify operation. nil fields are left untouched.
type BookPatch struct {
	ISBN    *string
	Name    *string
	Author  *string
	Keyword *string
	Price   *float64
}

// Empty reports whether no field is set.
func (p BookPatch) Empty() bool {
	return p.ISBN == nil && p.Name == nil && p.Author == nil && p.Keyword == nil && p.Price == nil
}

// --------------------------------------------------------------------------
// Finance
// --------------------------------------------------------------------------

// FinanceSummary is the income and expenditure of a range of transactions.
type FinanceSummary struct {
	Income      float64
	Expenditure float64
}

// Net returns Income - Expenditure.
func (s FinanceSummary) Net() float64 {
	return s.Income - s.Expenditure
}
