package engine

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/dBookstore/lib/command"
	"github.com/ValentinKolb/dBookstore/lib/store"
)

// dispatch runs a parsed command whose privilege has already been checked
func (e *Engine) dispatch(cmd command.Command) (string, error) {
	switch c := cmd.(type) {

	// session and accounts

	case command.Su:
		return "", e.accounts.Login(c.UserID, c.Password)
	case command.Logout:
		return "", e.accounts.Logout()
	case command.Register:
		return "", e.accounts.Register(c.UserID, c.Password, c.DisplayName)
	case command.Passwd:
		return "", e.accounts.ChangePassword(c.UserID, c.CurrentPassword, c.NewPassword)
	case command.UserAdd:
		return "", e.accounts.AddAccount(c.UserID, c.Password, c.Privilege, c.DisplayName)
	case command.Delete:
		return "", e.accounts.DeleteAccount(c.UserID)

	// books

	case command.ShowBooks:
		books, err := e.books.Query(c.Filter)
		if err != nil {
			return "", err
		}
		return formatBooks(books), nil
	case command.Buy:
		cost, err := e.books.Buy(c.ISBN, c.Quantity)
		if err != nil {
			return "", err
		}
		if err := e.ledger.RecordTransaction(cost, true); err != nil {
			return "", err
		}
		return fmt.Sprintf("%.2f\n", cost), nil
	case command.Select:
		if err := e.books.Select(c.ISBN); err != nil {
			return "", err
		}
		e.accounts.Select(c.ISBN)
		return "", nil
	case command.Modify:
		isbn, err := e.selected()
		if err != nil {
			return "", err
		}
		if err := e.books.Modify(isbn, c.Patch); err != nil {
			return "", err
		}
		if c.Patch.ISBN != nil {
			e.accounts.RenameSelection(isbn, *c.Patch.ISBN)
		}
		return "", nil
	case command.Import:
		isbn, err := e.selected()
		if err != nil {
			return "", err
		}
		if err := e.books.Import(isbn, c.Quantity); err != nil {
			return "", err
		}
		return "", e.ledger.RecordTransaction(c.TotalCost, false)

	// ledger

	case command.ShowFinance:
		if c.Count == 0 {
			return "\n", nil
		}
		summary, err := e.ledger.FinanceSummary(c.Count)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("+ %.2f - %.2f\n", summary.Income, summary.Expenditure), nil
	case command.Log:
		return e.ledger.FullLog(), nil
	case command.Report:
		if c.Kind == command.ReportFinance {
			return e.ledger.FinanceReport(), nil
		}
		return e.ledger.EmployeeReport(), nil
	}
	return "", store.NewError(store.RetCInvalidOperation, "unsupported command %s", cmd.Name())
}

// selected returns the ISBN selected in the active session
func (e *Engine) selected() (string, error) {
	isbn := e.accounts.Selected()
	if isbn == "" {
		return "", store.NewError(store.RetCInvalidOperation, "no book selected")
	}
	return isbn, nil
}

// formatBooks renders one tab separated line per book, or a single empty line
func formatBooks(books []store.Book) string {
	if len(books) == 0 {
		return "\n"
	}
	var sb strings.Builder
	for _, b := range books {
		sb.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\t%.2f\t%d\n",
			b.ISBN, b.Name, b.Author, b.Keyword, b.Price, b.Quantity))
	}
	return sb.String()
}
