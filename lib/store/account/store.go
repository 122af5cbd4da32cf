package account

import (
	"path/filepath"
	"sort"

	"github.com/ValentinKolb/dBookstore/lib/record"
	"github.com/ValentinKolb/dBookstore/lib/store"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var log = logger.GetLogger("account")

// FileName is the name of the account file inside the data directory.
const FileName = "accounts.dat"

// Root account created on first start
const (
	RootUserID   = "root"
	RootPassword = "sjtu"
	RootName     = "root"
)

// frame is one entry of the session stack
type frame struct {
	userID   string
	selected string
}

// Store is the account store.
//
// Thread-safety: Store is not thread-safe, see package store.
type Store struct {
	file     *record.FileStore[store.Account]
	accounts *xsync.MapOf[string, store.Account]
	sessions []frame
}

// Open loads the account file in dir and bootstraps the root account if needed.
func Open(dir string) (*Store, error) {
	file, err := record.Open(filepath.Join(dir, FileName), record.Codec[store.Account](Codec{}))
	if err != nil {
		return nil, err
	}

	accounts, err := file.ReadAll()
	if err != nil {
		return nil, err
	}

	s := &Store{
		file:     file,
		accounts: xsync.NewMapOf[string, store.Account](),
	}
	for _, a := range accounts {
		s.accounts.Store(a.UserID, a)
	}

	if _, ok := s.accounts.Load(RootUserID); !ok {
		s.accounts.Store(RootUserID, store.Account{
			UserID:      RootUserID,
			Password:    RootPassword,
			DisplayName: RootName,
			Privilege:   store.PrivRoot,
		})
		if err := s.persist(); err != nil {
			return nil, err
		}
		log.Infof("created root account in %s", file.Path())
	}

	log.Debugf("loaded %d accounts from %s", s.accounts.Size(), file.Path())
	return s, nil
}

// --------------------------------------------------------------------------
// Session Operations
// --------------------------------------------------------------------------

func (s *Store) Login(userID, password string) error {
	acc, ok := s.accounts.Load(userID)
	if !ok {
		return store.NewError(store.RetCNotFound, "account %s does not exist", userID)
	}
	// a supervisor may switch into a weaker identity without its password
	if password != "" && password != acc.Password && s.Privilege() <= acc.Privilege {
		return store.NewError(store.RetCPermissionDenied, "wrong password for %s", userID)
	}

	s.sessions = append(s.sessions, frame{userID: userID})
	log.Debugf("login %s (depth %d)", userID, len(s.sessions))
	return nil
}

func (s *Store) Logout() error {
	if len(s.sessions) == 0 {
		return store.NewError(store.RetCInvalidOperation, "no active session")
	}
	top := s.sessions[len(s.sessions)-1]
	s.sessions = s.sessions[:len(s.sessions)-1]
	log.Debugf("logout %s (depth %d)", top.userID, len(s.sessions))
	return nil
}

func (s *Store) Privilege() store.Privilege {
	if len(s.sessions) == 0 {
		return store.PrivGuest
	}
	acc, ok := s.accounts.Load(s.sessions[len(s.sessions)-1].userID)
	if !ok {
		return store.PrivGuest
	}
	return acc.Privilege
}

func (s *Store) CurrentUser() string {
	if len(s.sessions) == 0 {
		return ""
	}
	return s.sessions[len(s.sessions)-1].userID
}

func (s *Store) Selected() string {
	if len(s.sessions) == 0 {
		return ""
	}
	return s.sessions[len(s.sessions)-1].selected
}

func (s *Store) Select(isbn string) {
	if len(s.sessions) == 0 {
		return
	}
	s.sessions[len(s.sessions)-1].selected = isbn
}

func (s *Store) RenameSelection(oldISBN, newISBN string) {
	for i := range s.sessions {
		if s.sessions[i].selected == oldISBN {
			s.sessions[i].selected = newISBN
		}
	}
}

// Depth returns the number of frames on the session stack.
func (s *Store) Depth() int {
	return len(s.sessions)
}

// --------------------------------------------------------------------------
// Account Operations
// --------------------------------------------------------------------------

func (s *Store) Register(userID, password, displayName string) error {
	return s.create(store.Account{
		UserID:      userID,
		Password:    password,
		DisplayName: displayName,
		Privilege:   store.PrivCustomer,
	})
}

func (s *Store) AddAccount(userID, password string, privilege store.Privilege, displayName string) error {
	if !privilege.Valid() {
		return store.NewError(store.RetCBadArgument, "invalid privilege %d", privilege)
	}
	if privilege >= s.Privilege() {
		return store.NewError(store.RetCPermissionDenied, "cannot create account with privilege %d as %d", privilege, s.Privilege())
	}
	return s.create(store.Account{
		UserID:      userID,
		Password:    password,
		DisplayName: displayName,
		Privilege:   privilege,
	})
}

func (s *Store) ChangePassword(userID, currentPassword, newPassword string) error {
	acc, ok := s.accounts.Load(userID)
	if !ok {
		return store.NewError(store.RetCNotFound, "account %s does not exist", userID)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	// root may omit or mistype the current password. Everyone else must supply
	// it, so an omitted password is rejected for non-root users as well.
	if currentPassword != acc.Password && s.Privilege() != store.PrivRoot {
		return store.NewError(store.RetCPermissionDenied, "wrong password for %s", userID)
	}

	updated := acc
	updated.Password = newPassword
	s.accounts.Store(userID, updated)
	if err := s.persist(); err != nil {
		s.accounts.Store(userID, acc)
		return err
	}
	log.Debugf("changed password of %s", userID)
	return nil
}

func (s *Store) DeleteAccount(userID string) error {
	acc, ok := s.accounts.Load(userID)
	if !ok {
		return store.NewError(store.RetCNotFound, "account %s does not exist", userID)
	}
	for _, f := range s.sessions {
		if f.userID == userID {
			return store.NewError(store.RetCInvalidOperation, "account %s is logged in", userID)
		}
	}

	s.accounts.Delete(userID)
	if err := s.persist(); err != nil {
		s.accounts.Store(userID, acc)
		return err
	}
	log.Debugf("deleted account %s", userID)
	return nil
}

func (s *Store) Get(userID string) (store.Account, bool) {
	return s.accounts.Load(userID)
}

func (s *Store) All() []store.Account {
	result := make([]store.Account, 0, s.accounts.Size())
	s.accounts.Range(func(_ string, a store.Account) bool {
		result = append(result, a)
		return true
	})
	sort.Slice(result, func(i, j int) bool {
		return result[i].UserID < result[j].UserID
	})
	return result
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// create inserts a new account and persists the index
func (s *Store) create(acc store.Account) error {
	if err := validate(acc); err != nil {
		return err
	}
	if _, loaded := s.accounts.LoadOrStore(acc.UserID, acc); loaded {
		return store.NewError(store.RetCAlreadyExists, "account %s already exists", acc.UserID)
	}
	if err := s.persist(); err != nil {
		s.accounts.Delete(acc.UserID)
		return err
	}
	log.Debugf("created account %s (privilege %d)", acc.UserID, acc.Privilege)
	return nil
}

// persist rewrites the account file ordered by userID
func (s *Store) persist() error {
	if err := s.file.Rewrite(s.All()); err != nil {
		log.Errorf("persist accounts: %v", err)
		return store.Internal(err)
	}
	return nil
}

func validate(acc store.Account) error {
	if acc.UserID == "" || len(acc.UserID) > store.MaxUserIDLen {
		return store.NewError(store.RetCBadArgument, "invalid userID length %d", len(acc.UserID))
	}
	if err := validatePassword(acc.Password); err != nil {
		return err
	}
	if len(acc.DisplayName) > store.MaxDisplayNameLen {
		return store.NewError(store.RetCBadArgument, "display name too long (%d bytes)", len(acc.DisplayName))
	}
	if !acc.Privilege.Valid() {
		return store.NewError(store.RetCBadArgument, "invalid privilege %d", acc.Privilege)
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" || len(password) > store.MaxPasswordLen {
		return store.NewError(store.RetCBadArgument, "invalid password length %d", len(password))
	}
	return nil
}

var _ store.IAccountStore = (*Store)(nil)
