package book

import (
	"github.com/ValentinKolb/dBookstore/lib/record"
	"github.com/ValentinKolb/dBookstore/lib/store"
)

// On-disk layout of a book record (244 bytes)
const (
	isbnWidth   = 24
	fieldWidth  = 68 // name, author, keyword
	recordWidth = isbnWidth + 3*fieldWidth + 8 + 8
)

// Codec packs a store.Book into a fixed-width record.
type Codec struct{}

func (Codec) Size() int { return recordWidth }

func (Codec) Encode(b store.Book, buf []byte) error {
	w := record.NewWriter(buf)
	w.PutString("ISBN", b.ISBN, isbnWidth)
	w.PutString("name", b.Name, fieldWidth)
	w.PutString("author", b.Author, fieldWidth)
	w.PutString("keyword", b.Keyword, fieldWidth)
	w.PutFloat64(b.Price)
	w.PutInt64(b.Quantity)
	return w.Err()
}

func (Codec) Decode(buf []byte) (store.Book, error) {
	r := record.NewReader(buf)
	b := store.Book{
		ISBN:     r.String(isbnWidth),
		Name:     r.String(fieldWidth),
		Author:   r.String(fieldWidth),
		Keyword:  r.String(fieldWidth),
		Price:    r.Float64(),
		Quantity: r.Int64(),
	}
	return b, r.Err()
}
