package ledger

import (
	"github.com/ValentinKolb/dBookstore/lib/record"
	"github.com/ValentinKolb/dBookstore/lib/store"
)

// On-disk layout of the ledger records
const (
	transactionWidth = 8 + 1 + 7 // amount, isIncome, padding

	userIDWidth    = 32
	operationWidth = 256
	auditWidth     = userIDWidth + operationWidth
)

// TransactionCodec packs a store.Transaction into 16 bytes.
type TransactionCodec struct{}

func (TransactionCodec) Size() int { return transactionWidth }

func (TransactionCodec) Encode(t store.Transaction, buf []byte) error {
	w := record.NewWriter(buf)
	w.PutFloat64(t.Amount)
	w.PutBool(t.IsIncome)
	w.Skip(7)
	return w.Err()
}

func (TransactionCodec) Decode(buf []byte) (store.Transaction, error) {
	r := record.NewReader(buf)
	t := store.Transaction{
		Amount:   r.Float64(),
		IsIncome: r.Bool(),
	}
	r.Skip(7)
	return t, r.Err()
}

// AuditCodec packs a store.AuditEntry into 288 bytes.
type AuditCodec struct{}

func (AuditCodec) Size() int { return auditWidth }

func (AuditCodec) Encode(e store.AuditEntry, buf []byte) error {
	w := record.NewWriter(buf)
	w.PutString("userID", e.UserID, userIDWidth)
	w.PutString("operation", e.Operation, operationWidth)
	return w.Err()
}

func (AuditCodec) Decode(buf []byte) (store.AuditEntry, error) {
	r := record.NewReader(buf)
	e := store.AuditEntry{
		UserID:    r.String(userIDWidth),
		Operation: r.String(operationWidth),
	}
	return e, r.Err()
}
