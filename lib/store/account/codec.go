package account

import (
	"github.com/ValentinKolb/dBookstore/lib/record"
	"github.com/ValentinKolb/dBookstore/lib/store"
)

// On-disk layout of an account record (108 bytes)
const (
	userIDWidth      = 32
	passwordWidth    = 32
	displayNameWidth = 36
	recordWidth      = userIDWidth + passwordWidth + displayNameWidth + 8
)

// Codec packs a store.Account into a fixed-width record.
type Codec struct{}

func (Codec) Size() int { return recordWidth }

func (Codec) Encode(a store.Account, buf []byte) error {
	w := record.NewWriter(buf)
	w.PutString("userID", a.UserID, userIDWidth)
	w.PutString("password", a.Password, passwordWidth)
	w.PutString("displayName", a.DisplayName, displayNameWidth)
	w.PutInt64(int64(a.Privilege))
	return w.Err()
}

func (Codec) Decode(buf []byte) (store.Account, error) {
	r := record.NewReader(buf)
	a := store.Account{
		UserID:      r.String(userIDWidth),
		Password:    r.String(passwordWidth),
		DisplayName: r.String(displayNameWidth),
		Privilege:   store.Privilege(r.Int64()),
	}
	return a, r.Err()
}
