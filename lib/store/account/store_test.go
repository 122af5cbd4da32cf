package account

import (
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

// loginRoot pushes the root session
func loginRoot(t *testing.T, s *Store) {
	t.Helper()
	if err := s.Login(RootUserID, RootPassword); err != nil {
		t.Fatalf("login root: %v", err)
	}
}

func requireCode(t *testing.T, err error, code store.RetCode) {
	t.Helper()
	if got := store.CodeOf(err); got != code {
		t.Fatalf("code = %s (err %v), want %s", got, err, code)
	}
}

func TestCodec(t *testing.T) {
	rectesting.RunCodecTests[store.Account](t, "Account", Codec{}, func() []store.Account {
		return []store.Account{
			{UserID: "root", Password: "sjtu", DisplayName: "root", Privilege: store.PrivRoot},
			{UserID: "abcdefghijklmnopqrstuvwxyz0123", Password: "012345678901234567890123456789", DisplayName: "0123456789012345678901234567890123", Privilege: store.PrivStaff},
			{UserID: "alice", Password: "pass1", DisplayName: "Alice", Privilege: store.PrivCustomer},
		}
	})
}

func TestBootstrapRoot(t *testing.T) {
	s, dir := newStore(t)

	root, ok := s.Get(RootUserID)
	if !ok {
		t.Fatalf("root account missing")
	}
	if root.Privilege != store.PrivRoot || root.Password != RootPassword {
		t.Errorf("unexpected root account: %+v", root)
	}

	// reopening must not create a second root
	if _, err := Open(dir); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if n, _ := s.file.Count(); n != 1 {
		t.Errorf("account file has %d records, want 1", n)
	}
}

func TestLogin(t *testing.T) {
	s, _ := newStore(t)
	if err := s.Register("alice", "pass1", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("UnknownUser", func(t *testing.T) {
		requireCode(t, s.Login("nobody", "x"), store.RetCNotFound)
	})

	t.Run("WrongPasswordAsGuest", func(t *testing.T) {
		requireCode(t, s.Login("alice", "wrong"), store.RetCPermissionDenied)
		if s.Depth() != 0 {
			t.Errorf("failed login pushed a frame")
		}
	})

	t.Run("EmptyPasswordIsNotChecked", func(t *testing.T) {
		if err := s.Login("alice", ""); err != nil {
			t.Fatalf("login without password: %v", err)
		}
		if s.CurrentUser() != "alice" || s.Privilege() != store.PrivCustomer {
			t.Errorf("active = %s/%d", s.CurrentUser(), s.Privilege())
		}
		if err := s.Logout(); err != nil {
			t.Fatalf("logout: %v", err)
		}
	})

	t.Run("SupervisorSkipsPassword", func(t *testing.T) {
		loginRoot(t, s)
		if err := s.Login("alice", "wrong"); err != nil {
			t.Fatalf("root switching to alice: %v", err)
		}
		if s.CurrentUser() != "alice" || s.Depth() != 2 {
			t.Errorf("active = %s, depth %d", s.CurrentUser(), s.Depth())
		}
	})

	t.Run("EqualPrivilegeNeedsPassword", func(t *testing.T) {
		// alice (1) cannot enter bob (1) with a wrong password
		if err := s.Register("bob", "pass2", "Bob"); err != nil {
			t.Fatalf("register: %v", err)
		}
		requireCode(t, s.Login("bob", "wrong"), store.RetCPermissionDenied)
		if err := s.Login("bob", "pass2"); err != nil {
			t.Fatalf("login bob: %v", err)
		}
	})
}

func TestLogout(t *testing.T) {
	s, _ := newStore(t)
	requireCode(t, s.Logout(), store.RetCInvalidOperation)

	loginRoot(t, s)
	loginRoot(t, s)
	if s.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", s.Depth())
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.Privilege() != store.PrivRoot {
		t.Errorf("privilege after pop = %d, want 7", s.Privilege())
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.Privilege() != store.PrivGuest || s.CurrentUser() != "" {
		t.Errorf("expected guest after popping all frames")
	}
}

func TestRegister(t *testing.T) {
	s, dir := newStore(t)
	if err := s.Register("alice", "pass1", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}
	requireCode(t, s.Register("alice", "other", "Other"), store.RetCAlreadyExists)
	requireCode(t, s.Register("root", "x", "x"), store.RetCAlreadyExists)
	requireCode(t, s.Register("this_user_id_is_longer_than_30c", "x", "x"), store.RetCBadArgument)

	// persisted
	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	alice, ok := reopened.Get("alice")
	if !ok || alice.Privilege != store.PrivCustomer || alice.DisplayName != "Alice" {
		t.Errorf("unexpected alice after reopen: %+v (ok %v)", alice, ok)
	}
}

func TestChangePassword(t *testing.T) {
	s, dir := newStore(t)
	if err := s.Register("alice", "pass1", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := s.Login("alice", "pass1"); err != nil {
		t.Fatalf("login: %v", err)
	}

	requireCode(t, s.ChangePassword("nobody", "a", "b"), store.RetCNotFound)
	requireCode(t, s.ChangePassword("alice", "wrong", "new1"), store.RetCPermissionDenied)
	requireCode(t, s.ChangePassword("alice", "", "new1"), store.RetCPermissionDenied)

	if err := s.ChangePassword("alice", "pass1", "new1"); err != nil {
		t.Fatalf("change with correct password: %v", err)
	}

	// root may omit or mistype the current password
	loginRoot(t, s)
	if err := s.ChangePassword("alice", "", "new2"); err != nil {
		t.Fatalf("root override without password: %v", err)
	}
	if err := s.ChangePassword("alice", "garbage", "new3"); err != nil {
		t.Fatalf("root override with wrong password: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if a, _ := reopened.Get("alice"); a.Password != "new3" {
		t.Errorf("password after reopen = %q, want new3", a.Password)
	}
}

func TestAddAccount(t *testing.T) {
	s, _ := newStore(t)

	// guest has privilege 0, nothing is below it
	requireCode(t, s.AddAccount("x", "x", store.PrivCustomer, "x"), store.RetCPermissionDenied)

	loginRoot(t, s)
	requireCode(t, s.AddAccount("r2", "x", store.PrivRoot, "x"), store.RetCPermissionDenied)
	requireCode(t, s.AddAccount("bad", "x", 2, "x"), store.RetCBadArgument)

	if err := s.AddAccount("bob", "pass2", store.PrivStaff, "Bob"); err != nil {
		t.Fatalf("add staff as root: %v", err)
	}
	requireCode(t, s.AddAccount("bob", "pass2", store.PrivCustomer, "Bob"), store.RetCAlreadyExists)

	if err := s.Login("bob", "pass2"); err != nil {
		t.Fatalf("login bob: %v", err)
	}
	requireCode(t, s.AddAccount("carol", "x", store.PrivStaff, "Carol"), store.RetCPermissionDenied)
	if err := s.AddAccount("carol", "x", store.PrivCustomer, "Carol"); err != nil {
		t.Fatalf("add customer as staff: %v", err)
	}

	for _, a := range s.All() {
		if a.UserID != RootUserID && a.Privilege >= store.PrivRoot {
			t.Errorf("account %s has privilege %d", a.UserID, a.Privilege)
		}
	}
}

func TestDeleteAccount(t *testing.T) {
	s, dir := newStore(t)
	for _, id := range []string{"alice", "bob"} {
		if err := s.Register(id, "pw", id); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}

	loginRoot(t, s)
	if err := s.Login("alice", ""); err != nil {
		t.Fatalf("login alice: %v", err)
	}
	loginRoot(t, s)

	requireCode(t, s.DeleteAccount("nobody"), store.RetCNotFound)
	// alice is beneath the active frame
	requireCode(t, s.DeleteAccount("alice"), store.RetCInvalidOperation)
	requireCode(t, s.DeleteAccount(RootUserID), store.RetCInvalidOperation)

	if err := s.DeleteAccount("bob"); err != nil {
		t.Fatalf("delete bob: %v", err)
	}
	if _, ok := s.Get("bob"); ok {
		t.Errorf("bob still in index")
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, ok := reopened.Get("bob"); ok {
		t.Errorf("bob still persisted")
	}
	if _, ok := reopened.Get("alice"); !ok {
		t.Errorf("alice lost")
	}
}

func TestSelection(t *testing.T) {
	s, _ := newStore(t)

	// no-op without session
	s.Select("978-0")
	if s.Selected() != "" {
		t.Errorf("selection without session")
	}

	loginRoot(t, s)
	s.Select("978-0")
	loginRoot(t, s)
	if s.Selected() != "" {
		t.Errorf("fresh login must start without selection")
	}
	s.Select("978-0")

	s.RenameSelection("978-0", "978-1")
	if s.Selected() != "978-1" {
		t.Errorf("top selection = %q, want 978-1", s.Selected())
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.Selected() != "978-1" {
		t.Errorf("lower selection = %q, want 978-1", s.Selected())
	}
}

func TestAccountsPersistedSorted(t *testing.T) {
	s, _ := newStore(t)
	for _, id := range []string{"zed", "alice", "mike"} {
		if err := s.Register(id, "pw", id); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}

	records, err := s.file.ReadAll()
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	want := []string{"alice", "mike", "root", "zed"}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i, id := range want {
		if records[i].UserID != id {
			t.Errorf("record %d = %s, want %s", i, records[i].UserID, id)
		}
	}
}
