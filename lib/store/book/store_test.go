package book

import (
	"reflect"
	"testing"

	rectesting "github.com/ValentinKolb/dBookstore/lib/record/testing"
	"github.com/ValentinKolb/dBookstore/lib/store"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, dir
}

func requireCode(t *testing.T, err error, code store.RetCode) {
	t.Helper()
	if got := store.CodeOf(err); got != code {
		t.Fatalf("code = %s (err %v), want %s", got, err, code)
	}
}

func str(s string) *string     { return &s }
func price(f float64) *float64 { return &f }

// stock creates a book with the given fields
func stock(t *testing.T, s *Store, b store.Book) {
	t.Helper()
	if err := s.Select(b.ISBN); err != nil {
		t.Fatalf("select %s: %v", b.ISBN, err)
	}
	patch := store.BookPatch{Price: price(b.Price)}
	if b.Name != "" {
		patch.Name = str(b.Name)
	}
	if b.Author != "" {
		patch.Author = str(b.Author)
	}
	if b.Keyword != "" {
		patch.Keyword = str(b.Keyword)
	}
	if err := s.Modify(b.ISBN, patch); err != nil {
		t.Fatalf("modify %s: %v", b.ISBN, err)
	}
	if b.Quantity > 0 {
		if err := s.Import(b.ISBN, b.Quantity); err != nil {
			t.Fatalf("import %s: %v", b.ISBN, err)
		}
	}
}

func TestCodec(t *testing.T) {
	rectesting.RunCodecTests[store.Book](t, "Book", Codec{}, func() []store.Book {
		return []store.Book{
			{ISBN: "978-0"},
			{ISBN: "01234567890123456789012", Name: "A Tale", Author: "Someone", Keyword: "fiction|classic", Price: 19.99, Quantity: 12},
			{ISBN: "x", Name: "Ünïcödé", Price: 0.01, Quantity: 1 << 40},
		}
	})
}

func TestSelect(t *testing.T) {
	s, dir := newStore(t)

	if err := s.Select("978-0"); err != nil {
		t.Fatalf("select: %v", err)
	}
	b, ok := s.Get("978-0")
	if !ok || b != (store.Book{ISBN: "978-0"}) {
		t.Fatalf("unexpected placeholder: %+v (ok %v)", b, ok)
	}

	// idempotent
	if err := s.Import("978-0", 5); err != nil {
		t.Fatalf("import: %v", err)
	}
	if err := s.Select("978-0"); err != nil {
		t.Fatalf("select again: %v", err)
	}
	if b, _ := s.Get("978-0"); b.Quantity != 5 {
		t.Errorf("select reset the book: %+v", b)
	}

	requireCode(t, s.Select(""), store.RetCBadArgument)
	requireCode(t, s.Select("012345678901234567890123"), store.RetCBadArgument)

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Len() != 1 {
		t.Errorf("reopened catalog has %d books, want 1", reopened.Len())
	}
}

func TestModify(t *testing.T) {
	s, _ := newStore(t)
	stock(t, s, store.Book{ISBN: "978-0", Name: "Old", Author: "Anon", Keyword: "a|b", Price: 10, Quantity: 3})
	stock(t, s, store.Book{ISBN: "978-1"})

	t.Run("Unknown", func(t *testing.T) {
		requireCode(t, s.Modify("nope", store.BookPatch{Name: str("x")}), store.RetCNotFound)
	})

	t.Run("Empty", func(t *testing.T) {
		requireCode(t, s.Modify("978-0", store.BookPatch{}), store.RetCBadArgument)
	})

	t.Run("SameISBN", func(t *testing.T) {
		requireCode(t, s.Modify("978-0", store.BookPatch{ISBN: str("978-0")}), store.RetCInvalidOperation)
	})

	t.Run("TakenISBN", func(t *testing.T) {
		requireCode(t, s.Modify("978-0", store.BookPatch{ISBN: str("978-1"), Name: str("New")}), store.RetCAlreadyExists)
		if b, _ := s.Get("978-0"); b.Name != "Old" {
			t.Errorf("failed modify changed the book: %+v", b)
		}
	})

	t.Run("InvalidKeyword", func(t *testing.T) {
		requireCode(t, s.Modify("978-0", store.BookPatch{Keyword: str("a|a")}), store.RetCBadArgument)
		requireCode(t, s.Modify("978-0", store.BookPatch{Keyword: str("a||b")}), store.RetCBadArgument)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		requireCode(t, s.Modify("978-0", store.BookPatch{Price: price(-1)}), store.RetCBadArgument)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		if err := s.Modify("978-0", store.BookPatch{Author: str("Someone")}); err != nil {
			t.Fatalf("modify: %v", err)
		}
		want := store.Book{ISBN: "978-0", Name: "Old", Author: "Someone", Keyword: "a|b", Price: 10, Quantity: 3}
		if b, _ := s.Get("978-0"); b != want {
			t.Errorf("got %+v, want %+v", b, want)
		}
	})
}

func TestRenameRoundTrip(t *testing.T) {
	s, dir := newStore(t)
	stock(t, s, store.Book{ISBN: "978-0", Name: "Book", Author: "Anon", Keyword: "fiction", Price: 12.5, Quantity: 4})

	if err := s.Modify("978-0", store.BookPatch{ISBN: str("978-9"), Name: str("Renamed")}); err != nil {
		t.Fatalf("rename: %v", err)
	}

	for _, reopen := range []bool{false, true} {
		cur := s
		if reopen {
			var err error
			if cur, err = Open(dir); err != nil {
				t.Fatalf("reopen: %v", err)
			}
		}

		got, err := cur.Query(store.BookFilter{Field: store.FieldISBN, Value: "978-9"})
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		want := []store.Book{{ISBN: "978-9", Name: "Renamed", Author: "Anon", Keyword: "fiction", Price: 12.5, Quantity: 4}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("reopen=%v: got %+v, want %+v", reopen, got, want)
		}

		old, _ := cur.Query(store.BookFilter{Field: store.FieldISBN, Value: "978-0"})
		if len(old) != 0 {
			t.Errorf("reopen=%v: old ISBN still present", reopen)
		}
	}
}

func TestImportAndBuy(t *testing.T) {
	s, _ := newStore(t)
	stock(t, s, store.Book{ISBN: "978-0", Price: 10})

	requireCode(t, s.Import("nope", 1), store.RetCNotFound)
	requireCode(t, s.Import("978-0", 0), store.RetCBadArgument)
	if err := s.Import("978-0", 10); err != nil {
		t.Fatalf("import: %v", err)
	}

	cost, err := s.Buy("978-0", 3)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if cost != 30 {
		t.Errorf("cost = %v, want 30", cost)
	}
	if b, _ := s.Get("978-0"); b.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", b.Quantity)
	}

	_, err = s.Buy("978-0", 8)
	requireCode(t, err, store.RetCInsufficientStock)
	_, err = s.Buy("nope", 1)
	requireCode(t, err, store.RetCNotFound)
	_, err = s.Buy("978-0", 0)
	requireCode(t, err, store.RetCBadArgument)
	if b, _ := s.Get("978-0"); b.Quantity != 7 {
		t.Errorf("failed buys changed stock: %d", b.Quantity)
	}
}

func TestBuyTwice(t *testing.T) {
	for _, initial := range []int64{3, 5, 6, 7, 10} {
		const q = 3
		s, _ := newStore(t)
		stock(t, s, store.Book{ISBN: "978-0", Price: 1, Quantity: initial})

		if _, err := s.Buy("978-0", q); err != nil && initial >= q {
			t.Fatalf("first buy with stock %d: %v", initial, err)
		}
		_, err := s.Buy("978-0", q)
		if failed := err != nil; failed != (initial < 2*q) {
			t.Errorf("stock %d: second buy failed=%v, want %v", initial, failed, initial < 2*q)
		}

		b, _ := s.Get("978-0")
		if b.Quantity < 0 {
			t.Errorf("negative stock %d", b.Quantity)
		}
	}
}

func TestQuery(t *testing.T) {
	s, _ := newStore(t)
	stock(t, s, store.Book{ISBN: "b", Name: "Dune", Author: "Herbert", Keyword: "fiction|classic"})
	stock(t, s, store.Book{ISBN: "a", Name: "Emma", Author: "Austen", Keyword: "classic"})
	stock(t, s, store.Book{ISBN: "c", Name: "Dune", Author: "Other", Keyword: "sci-fi"})
	stock(t, s, store.Book{ISBN: "B"})

	isbns := func(books []store.Book) []string {
		var out []string
		for _, b := range books {
			out = append(out, b.ISBN)
		}
		return out
	}

	tests := []struct {
		name   string
		filter store.BookFilter
		want   []string
	}{
		{"All", store.BookFilter{}, []string{"B", "a", "b", "c"}},
		{"ISBN", store.BookFilter{Field: store.FieldISBN, Value: "c"}, []string{"c"}},
		{"Name", store.BookFilter{Field: store.FieldName, Value: "Dune"}, []string{"b", "c"}},
		{"Author", store.BookFilter{Field: store.FieldAuthor, Value: "Austen"}, []string{"a"}},
		{"Keyword", store.BookFilter{Field: store.FieldKeyword, Value: "classic"}, []string{"a", "b"}},
		{"KeywordPrefix", store.BookFilter{Field: store.FieldKeyword, Value: "class"}, nil},
		{"NoMatch", store.BookFilter{Field: store.FieldName, Value: "Nothing"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Query(tt.filter)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			if !reflect.DeepEqual(isbns(got), tt.want) {
				t.Errorf("got %v, want %v", isbns(got), tt.want)
			}
		})
	}

	t.Run("MultiTagRejected", func(t *testing.T) {
		_, err := s.Query(store.BookFilter{Field: store.FieldKeyword, Value: "classic|fiction"})
		requireCode(t, err, store.RetCBadArgument)
	})
}
