package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ValentinKolb/dBookstore/lib/store"
)

var (
	// ErrEmpty is returned by Parse for a line without tokens.
	ErrEmpty = errors.New("empty command")
	// ErrSyntax is the base error of every rejected line; use errors.Is.
	ErrSyntax = errors.New("syntax error")
)

// Parse tokenizes line and builds the matching command.
func Parse(line string) (Command, error) {
	tokens := Tokenize(strings.TrimSpace(line))
	if len(tokens) == 0 {
		return nil, ErrEmpty
	}
	args := tokens[1:]

	switch tokens[0] {
	case "quit", "exit":
		// trailing tokens are ignored
		return Quit{}, nil
	case "su":
		return parseSu(args)
	case "logout":
		if len(args) != 0 {
			return nil, arity(tokens[0])
		}
		return Logout{}, nil
	case "register":
		return parseRegister(args)
	case "passwd":
		return parsePasswd(args)
	case "useradd":
		return parseUserAdd(args)
	case "delete":
		if len(args) != 1 {
			return nil, arity(tokens[0])
		}
		if err := checkID("userID", args[0]); err != nil {
			return nil, err
		}
		return Delete{UserID: args[0]}, nil
	case "show":
		if len(args) > 0 && args[0] == "finance" {
			return parseShowFinance(args[1:])
		}
		return parseShowBooks(args)
	case "buy":
		return parseBuy(args)
	case "select":
		if len(args) != 1 {
			return nil, arity(tokens[0])
		}
		if err := checkISBN(args[0]); err != nil {
			return nil, err
		}
		return Select{ISBN: args[0]}, nil
	case "modify":
		return parseModify(args)
	case "import":
		return parseImport(args)
	case "log":
		// trailing tokens are ignored
		return Log{}, nil
	case "report":
		if len(args) != 1 {
			return nil, arity(tokens[0])
		}
		switch kind := ReportKind(args[0]); kind {
		case ReportFinance, ReportEmployee:
			return Report{Kind: kind}, nil
		}
		return nil, syntaxf("unknown report %q", args[0])
	}
	return nil, syntaxf("unknown command %q", tokens[0])
}

// --------------------------------------------------------------------------
// Account Commands
// --------------------------------------------------------------------------

func parseSu(args []string) (Command, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, arity("su")
	}
	cmd := Su{UserID: args[0]}
	if err := checkID("userID", cmd.UserID); err != nil {
		return nil, err
	}
	// the password is only compared, never stored, so its charset is not checked
	if len(args) == 2 {
		cmd.Password = args[1]
	}
	return cmd, nil
}

func parseRegister(args []string) (Command, error) {
	if len(args) != 3 {
		return nil, arity("register")
	}
	cmd := Register{UserID: args[0], Password: args[1], DisplayName: args[2]}
	if err := checkID("userID", cmd.UserID); err != nil {
		return nil, err
	}
	if err := checkID("password", cmd.Password); err != nil {
		return nil, err
	}
	if err := checkDisplayName(cmd.DisplayName); err != nil {
		return nil, err
	}
	return cmd, nil
}

func parsePasswd(args []string) (Command, error) {
	var cmd Passwd
	switch len(args) {
	case 2:
		cmd = Passwd{UserID: args[0], NewPassword: args[1]}
	case 3:
		// only compared against the stored password, root may mistype it
		cmd = Passwd{UserID: args[0], CurrentPassword: args[1], NewPassword: args[2]}
	default:
		return nil, arity("passwd")
	}
	if err := checkID("userID", cmd.UserID); err != nil {
		return nil, err
	}
	if err := checkID("newPassword", cmd.NewPassword); err != nil {
		return nil, err
	}
	return cmd, nil
}

func parseUserAdd(args []string) (Command, error) {
	if len(args) != 4 {
		return nil, arity("useradd")
	}
	if err := checkID("userID", args[0]); err != nil {
		return nil, err
	}
	if err := checkID("password", args[1]); err != nil {
		return nil, err
	}
	n, err := parseInt("privilege", args[2])
	if err != nil {
		return nil, err
	}
	privilege := store.Privilege(n)
	if int64(privilege) != n || privilege == store.PrivGuest || !privilege.Valid() {
		return nil, syntaxf("privilege must be 1, 3 or 7, got %s", args[2])
	}
	if err := checkDisplayName(args[3]); err != nil {
		return nil, err
	}
	return UserAdd{UserID: args[0], Password: args[1], Privilege: privilege, DisplayName: args[3]}, nil
}

// --------------------------------------------------------------------------
// Book Commands
// --------------------------------------------------------------------------

func parseShowBooks(args []string) (Command, error) {
	switch len(args) {
	case 0:
		return ShowBooks{}, nil
	case 1:
	default:
		return nil, syntaxf("show accepts at most one filter")
	}

	key, value, err := splitFlag(args[0])
	if err != nil {
		return nil, err
	}
	var filter store.BookFilter
	switch key {
	case "ISBN":
		filter = store.BookFilter{Field: store.FieldISBN, Value: value}
		err = checkISBN(value)
	case "name", "author", "keyword":
		if value, err = unquote(key, value); err != nil {
			return nil, err
		}
		field := map[string]store.BookField{
			"name":    store.FieldName,
			"author":  store.FieldAuthor,
			"keyword": store.FieldKeyword,
		}[key]
		filter = store.BookFilter{Field: field, Value: value}
		if key == "keyword" && strings.Contains(value, store.KeywordSeparator) {
			err = syntaxf("keyword filter must be a single tag")
		}
	default:
		err = syntaxf("unknown filter %q", key)
	}
	if err != nil {
		return nil, err
	}
	return ShowBooks{Filter: filter}, nil
}

func parseShowFinance(args []string) (Command, error) {
	switch len(args) {
	case 0:
		return ShowFinance{Count: -1}, nil
	case 1:
		n, err := parseInt("count", args[0])
		if err != nil {
			return nil, err
		}
		if n > int64(^uint32(0)>>1) {
			return nil, syntaxf("count %s out of range", args[0])
		}
		return ShowFinance{Count: int(n)}, nil
	}
	return nil, arity("show finance")
}

func parseBuy(args []string) (Command, error) {
	if len(args) != 2 {
		return nil, arity("buy")
	}
	if err := checkISBN(args[0]); err != nil {
		return nil, err
	}
	quantity, err := parseQuantity(args[1])
	if err != nil {
		return nil, err
	}
	return Buy{ISBN: args[0], Quantity: quantity}, nil
}

func parseModify(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, arity("modify")
	}

	var patch store.BookPatch
	seen := make(map[string]struct{}, len(args))
	for _, arg := range args {
		key, value, err := splitFlag(arg)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			return nil, syntaxf("repeated parameter -%s", key)
		}
		seen[key] = struct{}{}

		switch key {
		case "ISBN":
			if err := checkISBN(value); err != nil {
				return nil, err
			}
			patch.ISBN = &value
		case "name", "author", "keyword":
			v, err := unquote(key, value)
			if err != nil {
				return nil, err
			}
			switch key {
			case "name":
				patch.Name = &v
			case "author":
				patch.Author = &v
			case "keyword":
				if !store.ValidKeywords(v) {
					return nil, syntaxf("invalid keyword list %q", v)
				}
				patch.Keyword = &v
			}
		case "price":
			price, err := parsePrice("price", value)
			if err != nil {
				return nil, err
			}
			patch.Price = &price
		default:
			return nil, syntaxf("unknown parameter -%s", key)
		}
	}
	return Modify{Patch: patch}, nil
}

func parseImport(args []string) (Command, error) {
	if len(args) != 2 {
		return nil, arity("import")
	}
	quantity, err := parseQuantity(args[0])
	if err != nil {
		return nil, err
	}
	cost, err := parsePrice("totalCost", args[1])
	if err != nil {
		return nil, err
	}
	if cost <= 0 {
		return nil, syntaxf("totalCost must be positive, got %s", args[1])
	}
	return Import{Quantity: quantity, TotalCost: cost}, nil
}

// --------------------------------------------------------------------------
// Validators
// --------------------------------------------------------------------------

func syntaxf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

func arity(name string) error {
	return syntaxf("wrong number of arguments for %s", name)
}

// checkID validates user ids and passwords: 1..30 of [A-Za-z0-9_]
func checkID(what, s string) error {
	if s == "" || len(s) > store.MaxUserIDLen {
		return syntaxf("%s must have 1 to %d characters", what, store.MaxUserIDLen)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_') {
			return syntaxf("%s contains invalid character %q", what, c)
		}
	}
	return nil
}

func checkDisplayName(s string) error {
	if s == "" || len(s) > store.MaxDisplayNameLen {
		return syntaxf("userName must have 1 to %d bytes", store.MaxDisplayNameLen)
	}
	if strings.Contains(s, `"`) {
		return syntaxf("userName must not contain quotes")
	}
	return nil
}

func checkISBN(s string) error {
	if s == "" || len(s) > store.MaxISBNLen {
		return syntaxf("ISBN must have 1 to %d bytes", store.MaxISBNLen)
	}
	if strings.Contains(s, `"`) {
		return syntaxf("ISBN must not contain quotes")
	}
	return nil
}

// splitFlag splits "-key=value". The value may be empty only to be rejected later.
func splitFlag(arg string) (key, value string, err error) {
	if !strings.HasPrefix(arg, "-") {
		return "", "", syntaxf("expected -key=value, got %q", arg)
	}
	key, value, ok := strings.Cut(arg[1:], "=")
	if !ok || key == "" {
		return "", "", syntaxf("expected -key=value, got %q", arg)
	}
	if value == "" {
		return "", "", syntaxf("empty value for -%s", key)
	}
	return key, value, nil
}

// unquote strips the surrounding quotes of a name, author or keyword value
func unquote(key, value string) (string, error) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", syntaxf("value of -%s must be quoted", key)
	}
	inner := value[1 : len(value)-1]
	if inner == "" || len(inner) > store.MaxBookFieldLen {
		return "", syntaxf("value of -%s must have 1 to %d bytes", key, store.MaxBookFieldLen)
	}
	if strings.Contains(inner, `"`) {
		return "", syntaxf("value of -%s must not contain quotes", key)
	}
	return inner, nil
}

func parseInt(what, s string) (int64, error) {
	if s == "" {
		return 0, syntaxf("%s is empty", what)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, syntaxf("%s must be a non-negative integer, got %q", what, s)
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, syntaxf("%s out of range: %s", what, s)
	}
	return n, nil
}

func parseQuantity(s string) (int64, error) {
	n, err := parseInt("quantity", s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, syntaxf("quantity must be positive, got %s", s)
	}
	return n, nil
}

// parsePrice accepts digits with at most one dot
func parsePrice(what, s string) (float64, error) {
	dots := 0
	digits := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '.':
			dots++
		case c >= '0' && c <= '9':
			digits++
		default:
			return 0, syntaxf("%s must be a decimal number, got %q", what, s)
		}
	}
	if digits == 0 || dots > 1 {
		return 0, syntaxf("%s must be a decimal number, got %q", what, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, syntaxf("%s out of range: %s", what, s)
	}
	return v, nil
}
