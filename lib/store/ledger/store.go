package ledger

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ValentinKolb/dBookstore/lib/record"
	"github.com/ValentinKolb/dBookstore/lib/store"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("ledger")

// File names inside the data directory
const (
	TransactionFileName = "transactions.dat"
	AuditFileName       = "audit.dat"
)

// Store is the ledger store.
//
// Thread-safety: Store is not thread-safe, see package store.
type Store struct {
	transactionFile *record.FileStore[store.Transaction]
	auditFile       *record.FileStore[store.AuditEntry]

	transactions []store.Transaction
	audit        []store.AuditEntry
}

// Open loads the transaction and audit files in dir.
func Open(dir string) (*Store, error) {
	transactionFile, err := record.Open(filepath.Join(dir, TransactionFileName), record.Codec[store.Transaction](TransactionCodec{}))
	if err != nil {
		return nil, err
	}
	auditFile, err := record.Open(filepath.Join(dir, AuditFileName), record.Codec[store.AuditEntry](AuditCodec{}))
	if err != nil {
		return nil, err
	}

	transactions, err := transactionFile.ReadAll()
	if err != nil {
		return nil, err
	}
	audit, err := auditFile.ReadAll()
	if err != nil {
		return nil, err
	}

	log.Debugf("loaded %d transactions and %d audit entries", len(transactions), len(audit))
	return &Store{
		transactionFile: transactionFile,
		auditFile:       auditFile,
		transactions:    transactions,
		audit:           audit,
	}, nil
}

// --------------------------------------------------------------------------
// Write Operations
// --------------------------------------------------------------------------

func (s *Store) RecordTransaction(amount float64, isIncome bool) error {
	t := store.Transaction{Amount: amount, IsIncome: isIncome}
	if err := s.transactionFile.Write(t, -1); err != nil {
		log.Errorf("append transaction: %v", err)
		return store.Internal(err)
	}
	s.transactions = append(s.transactions, t)
	return nil
}

func (s *Store) RecordAudit(userID, operation string) error {
	e := store.AuditEntry{
		UserID:    userID,
		Operation: truncate(operation, store.MaxOperationLen),
	}
	if err := s.auditFile.Write(e, -1); err != nil {
		log.Errorf("append audit entry: %v", err)
		return store.Internal(err)
	}
	s.audit = append(s.audit, e)
	return nil
}

// --------------------------------------------------------------------------
// Query Operations
// --------------------------------------------------------------------------

func (s *Store) FinanceSummary(count int) (store.FinanceSummary, error) {
	var summary store.FinanceSummary
	if count == 0 {
		return summary, nil
	}
	if count > len(s.transactions) {
		return summary, store.NewError(store.RetCBadArgument, "only %d transactions recorded, requested %d", len(s.transactions), count)
	}

	start := 0
	if count > 0 {
		start = len(s.transactions) - count
	}
	for _, t := range s.transactions[start:] {
		if t.IsIncome {
			summary.Income += t.Amount
		} else {
			summary.Expenditure += t.Amount
		}
	}
	return summary, nil
}

func (s *Store) FinanceReport() string {
	summary, _ := s.FinanceSummary(-1)

	var sb strings.Builder
	sb.WriteString("=== Finance Report ===\n")
	sb.WriteString(fmt.Sprintf("Total Transactions: %d\n", len(s.transactions)))
	sb.WriteString(fmt.Sprintf("Total Income: %.2f\n", summary.Income))
	sb.WriteString(fmt.Sprintf("Total Expenditure: %.2f\n", summary.Expenditure))
	sb.WriteString(fmt.Sprintf("Net Profit: %.2f\n", summary.Net()))
	return sb.String()
}

func (s *Store) EmployeeReport() string {
	counts := make(map[string]int)
	for _, e := range s.audit {
		counts[e.UserID]++
	}
	users := make([]string, 0, len(counts))
	for id := range counts {
		users = append(users, id)
	}
	sort.Strings(users)

	var sb strings.Builder
	sb.WriteString("=== Employee Report ===\n")
	for _, id := range users {
		sb.WriteString(fmt.Sprintf("User: %s, Operations: %d\n", id, counts[id]))
	}
	return sb.String()
}

func (s *Store) FullLog() string {
	var sb strings.Builder
	sb.WriteString("=== System Log ===\n")
	sb.WriteString(fmt.Sprintf("Total Log Entries: %d\n", len(s.audit)))
	for _, e := range s.audit {
		sb.WriteString(fmt.Sprintf("[%s] %s\n", e.UserID, e.Operation))
	}
	return sb.String()
}

func (s *Store) Transactions() []store.Transaction {
	return append([]store.Transaction(nil), s.transactions...)
}

func (s *Store) Audit() []store.AuditEntry {
	return append([]store.AuditEntry(nil), s.audit...)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// truncate shortens s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

var _ store.ILedgerStore = (*Store)(nil)
