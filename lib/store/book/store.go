package book

import (
	"math"
	"path/filepath"
	"sort"

	"github.com/ValentinKolb/dBookstore/lib/record"
	"github.com/ValentinKolb/dBookstore/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var log = logger.GetLogger("book")

// FileName is the name of the book file inside the data directory.
const FileName = "books.dat"

// Store is the book store.
//
// Thread-safety: Store is not thread-safe, see package store.
type Store struct {
	file  *record.FileStore[store.Book]
	books *xsync.MapOf[string, store.Book]
}

// Open loads the book file in dir.
func Open(dir string) (*Store, error) {
	file, err := record.Open(filepath.Join(dir, FileName), record.Codec[store.Book](Codec{}))
	if err != nil {
		return nil, err
	}

	books, err := file.ReadAll()
	if err != nil {
		return nil, err
	}

	s := &Store{
		file:  file,
		books: xsync.NewMapOf[string, store.Book](),
	}
	for _, b := range books {
		s.books.Store(b.ISBN, b)
	}
	log.Debugf("loaded %d books from %s", s.books.Size(), file.Path())
	return s, nil
}

// --------------------------------------------------------------------------
// Write Operations
// --------------------------------------------------------------------------

func (s *Store) Select(isbn string) error {
	if err := validateISBN(isbn); err != nil {
		return err
	}
	if _, loaded := s.books.LoadOrStore(isbn, store.Book{ISBN: isbn}); loaded {
		return nil
	}
	if err := s.persist(); err != nil {
		s.books.Delete(isbn)
		return err
	}
	log.Debugf("created book %s", isbn)
	return nil
}

func (s *Store) Modify(isbn string, patch store.BookPatch) error {
	old, ok := s.books.Load(isbn)
	if !ok {
		return store.NewError(store.RetCNotFound, "book %s does not exist", isbn)
	}
	if patch.Empty() {
		return store.NewError(store.RetCBadArgument, "nothing to modify")
	}

	updated, err := apply(old, patch)
	if err != nil {
		return err
	}

	if updated.ISBN != isbn {
		if _, taken := s.books.Load(updated.ISBN); taken {
			return store.NewError(store.RetCAlreadyExists, "book %s already exists", updated.ISBN)
		}
		s.books.Delete(isbn)
	}
	s.books.Store(updated.ISBN, updated)

	if err := s.persist(); err != nil {
		s.books.Delete(updated.ISBN)
		s.books.Store(isbn, old)
		return err
	}
	log.Debugf("modified book %s", updated.ISBN)
	return nil
}

func (s *Store) Import(isbn string, quantity int64) error {
	if quantity <= 0 {
		return store.NewError(store.RetCBadArgument, "import quantity must be positive, got %d", quantity)
	}
	old, ok := s.books.Load(isbn)
	if !ok {
		return store.NewError(store.RetCNotFound, "book %s does not exist", isbn)
	}
	if old.Quantity > math.MaxInt64-quantity {
		return store.NewError(store.RetCBadArgument, "stock of %s would overflow", isbn)
	}

	updated := old
	updated.Quantity += quantity
	return s.update(old, updated)
}

func (s *Store) Buy(isbn string, quantity int64) (float64, error) {
	if quantity <= 0 {
		return 0, store.NewError(store.RetCBadArgument, "buy quantity must be positive, got %d", quantity)
	}
	old, ok := s.books.Load(isbn)
	if !ok {
		return 0, store.NewError(store.RetCNotFound, "book %s does not exist", isbn)
	}
	if quantity > old.Quantity {
		return 0, store.NewError(store.RetCInsufficientStock, "only %d copies of %s in stock", old.Quantity, isbn)
	}

	updated := old
	updated.Quantity -= quantity
	if err := s.update(old, updated); err != nil {
		return 0, err
	}
	return old.Price * float64(quantity), nil
}

// --------------------------------------------------------------------------
// Query Operations
// --------------------------------------------------------------------------

func (s *Store) Query(filter store.BookFilter) ([]store.Book, error) {
	if filter.Field == store.FieldKeyword && len(store.SplitKeywords(filter.Value)) > 1 {
		return nil, store.NewError(store.RetCBadArgument, "keyword filter must be a single tag")
	}

	var result []store.Book
	s.books.Range(func(_ string, b store.Book) bool {
		if matches(b, filter) {
			result = append(result, b)
		}
		return true
	})
	sort.Slice(result, func(i, j int) bool {
		return result[i].ISBN < result[j].ISBN
	})
	return result, nil
}

func (s *Store) Get(isbn string) (store.Book, bool) {
	return s.books.Load(isbn)
}

// Len returns the number of books in the catalog.
func (s *Store) Len() int {
	return s.books.Size()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func matches(b store.Book, filter store.BookFilter) bool {
	switch filter.Field {
	case store.FieldNone:
		return true
	case store.FieldISBN:
		return b.ISBN == filter.Value
	case store.FieldName:
		return b.Name == filter.Value
	case store.FieldAuthor:
		return b.Author == filter.Value
	case store.FieldKeyword:
		return store.HasKeyword(b.Keyword, filter.Value)
	default:
		return false
	}
}

// apply returns b with every field of patch applied after validating it
func apply(b store.Book, patch store.BookPatch) (store.Book, error) {
	if patch.ISBN != nil {
		if *patch.ISBN == b.ISBN {
			return b, store.NewError(store.RetCInvalidOperation, "new ISBN equals current ISBN %s", b.ISBN)
		}
		if err := validateISBN(*patch.ISBN); err != nil {
			return b, err
		}
		b.ISBN = *patch.ISBN
	}
	if patch.Name != nil {
		if err := validateField("name", *patch.Name); err != nil {
			return b, err
		}
		b.Name = *patch.Name
	}
	if patch.Author != nil {
		if err := validateField("author", *patch.Author); err != nil {
			return b, err
		}
		b.Author = *patch.Author
	}
	if patch.Keyword != nil {
		if err := validateField("keyword", *patch.Keyword); err != nil {
			return b, err
		}
		if !store.ValidKeywords(*patch.Keyword) {
			return b, store.NewError(store.RetCBadArgument, "invalid keyword set %q", *patch.Keyword)
		}
		b.Keyword = *patch.Keyword
	}
	if patch.Price != nil {
		if *patch.Price < 0 || math.IsNaN(*patch.Price) || math.IsInf(*patch.Price, 0) {
			return b, store.NewError(store.RetCBadArgument, "invalid price %v", *patch.Price)
		}
		b.Price = *patch.Price
	}
	return b, nil
}

// update replaces old by updated under the same ISBN and persists the index
func (s *Store) update(old, updated store.Book) error {
	s.books.Store(updated.ISBN, updated)
	if err := s.persist(); err != nil {
		s.books.Store(old.ISBN, old)
		return err
	}
	return nil
}

// persist rewrites the book file ordered by ISBN
func (s *Store) persist() error {
	books, _ := s.Query(store.BookFilter{})
	if err := s.file.Rewrite(books); err != nil {
		log.Errorf("persist books: %v", err)
		return store.Internal(err)
	}
	return nil
}

func validateISBN(isbn string) error {
	if isbn == "" || len(isbn) > store.MaxISBNLen {
		return store.NewError(store.RetCBadArgument, "invalid ISBN length %d", len(isbn))
	}
	return nil
}

func validateField(name, value string) error {
	if value == "" || len(value) > store.MaxBookFieldLen {
		return store.NewError(store.RetCBadArgument, "invalid %s length %d", name, len(value))
	}
	return nil
}

var _ store.IBookStore = (*Store)(nil)
