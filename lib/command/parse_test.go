package command_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ValentinKolb/dBookstore/lib/command"
	"github.com/ValentinKolb/dBookstore/lib/store"
)

func ptr[T any](v T) *T { return &v }

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"su root sjtu", []string{"su", "root", "sjtu"}},
		{"  su   root  ", []string{"su", "root"}},
		{`modify -name="War and Peace" -price=10`, []string{"modify", `-name="War and Peace"`, "-price=10"}},
		{`show -author="a  b"`, []string{"show", `-author="a  b"`}},
		{`"unterminated quote here`, []string{`"unterminated quote here`}},
		{`a"b c"d e`, []string{`a"b c"d`, "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := command.Tokenize(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseValid(t *testing.T) {
	tests := []struct {
		line string
		want command.Command
	}{
		{"quit", command.Quit{}},
		{"exit", command.Quit{}},
		{"quit now", command.Quit{}},
		{"exit 1 2", command.Quit{}},
		{"su root", command.Su{UserID: "root"}},
		{"su root sjtu", command.Su{UserID: "root", Password: "sjtu"}},
		{"su root pass!", command.Su{UserID: "root", Password: "pass!"}},
		{"logout", command.Logout{}},
		{"register alice pw_1 Alice", command.Register{UserID: "alice", Password: "pw_1", DisplayName: "Alice"}},
		{"passwd alice new", command.Passwd{UserID: "alice", NewPassword: "new"}},
		{"passwd alice old new", command.Passwd{UserID: "alice", CurrentPassword: "old", NewPassword: "new"}},
		{"passwd alice o-l.d new", command.Passwd{UserID: "alice", CurrentPassword: "o-l.d", NewPassword: "new"}},
		{"useradd bob pw 3 Bob", command.UserAdd{UserID: "bob", Password: "pw", Privilege: store.PrivStaff, DisplayName: "Bob"}},
		{"delete bob", command.Delete{UserID: "bob"}},
		{"show", command.ShowBooks{}},
		{"show -ISBN=978-7", command.ShowBooks{Filter: store.BookFilter{Field: store.FieldISBN, Value: "978-7"}}},
		{`show -name="War and Peace"`, command.ShowBooks{Filter: store.BookFilter{Field: store.FieldName, Value: "War and Peace"}}},
		{`show -author="Tolstoy"`, command.ShowBooks{Filter: store.BookFilter{Field: store.FieldAuthor, Value: "Tolstoy"}}},
		{`show -keyword="novel"`, command.ShowBooks{Filter: store.BookFilter{Field: store.FieldKeyword, Value: "novel"}}},
		{"show finance", command.ShowFinance{Count: -1}},
		{"show finance 0", command.ShowFinance{Count: 0}},
		{"show finance 12", command.ShowFinance{Count: 12}},
		{"buy 978-7 2", command.Buy{ISBN: "978-7", Quantity: 2}},
		{"select 978-7", command.Select{ISBN: "978-7"}},
		{"import 5 100.5", command.Import{Quantity: 5, TotalCost: 100.5}},
		{"log", command.Log{}},
		{"log all", command.Log{}},
		{"report finance", command.Report{Kind: command.ReportFinance}},
		{"report employee", command.Report{Kind: command.ReportEmployee}},
		{
			`modify -ISBN=new -name="N" -author="A" -keyword="a|b" -price=9.5`,
			command.Modify{Patch: store.BookPatch{
				ISBN:    ptr("new"),
				Name:    ptr("N"),
				Author:  ptr("A"),
				Keyword: ptr("a|b"),
				Price:   ptr(9.5),
			}},
		},
		{"modify -price=0", command.Modify{Patch: store.BookPatch{Price: ptr(0.0)}}},
		{"modify -price=.5", command.Modify{Patch: store.BookPatch{Price: ptr(0.5)}}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := command.Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.line, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	lines := []string{
		"hello",
		"logout root",
		"su",
		"su a b c",
		"su bad-id",
		"su 0123456789012345678901234567890",
		"register alice pw",
		`register alice pw "Al"`,
		"register alice pw 01234567890123456789012345678901234",
		"passwd alice",
		"passwd alice old new-pw",
		"passwd a b c d",
		"useradd bob pw 0 Bob",
		"useradd bob pw 2 Bob",
		"useradd bob pw 8 Bob",
		"useradd bob pw -1 Bob",
		"useradd bob pw 3",
		"delete",
		"show -ISBN=",
		"show -name=War",
		`show -name=""`,
		`show -keyword="a|b"`,
		`show -title="x"`,
		"show -ISBN=a -ISBN=b",
		"show finance -1",
		"show finance x",
		"show finance 1 2",
		"show finance 99999999999999999999",
		"buy 978-7",
		"buy 978-7 0",
		"buy 978-7 -1",
		"buy 978-7 1.5",
		"buy 012345678901234567890123 1",
		"select",
		"select a b",
		"modify",
		"modify -price=",
		"modify -price=1.2.3",
		"modify -price=.",
		"modify -price=-1",
		"modify -price=1e5",
		"modify -price=1 -price=2",
		`modify -keyword="a||b"`,
		`modify -keyword="a|a"`,
		`modify -keyword="|a"`,
		"modify ISBN=x",
		"modify -=x",
		"import 5",
		"import 0 10",
		"import 5 0",
		"import 5 0.00",
		"import 5 abc",
		"report",
		"report sales",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			cmd, err := command.Parse(line)
			if err == nil {
				t.Fatalf("Parse(%q) = %#v, want error", line, cmd)
			}
			if !errors.Is(err, command.ErrSyntax) {
				t.Errorf("Parse(%q) error %v does not wrap ErrSyntax", line, err)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		if _, err := command.Parse(line); !errors.Is(err, command.ErrEmpty) {
			t.Errorf("Parse(%q) error = %v, want ErrEmpty", line, err)
		}
	}
}

func TestMinPrivilege(t *testing.T) {
	tests := []struct {
		line string
		want store.Privilege
	}{
		{"quit", store.PrivGuest},
		{"su root", store.PrivGuest},
		{"register a b c", store.PrivGuest},
		{"logout", store.PrivCustomer},
		{"passwd a b", store.PrivCustomer},
		{"show", store.PrivCustomer},
		{"buy x 1", store.PrivCustomer},
		{"useradd a b 1 c", store.PrivStaff},
		{"select x", store.PrivStaff},
		{"modify -price=1", store.PrivStaff},
		{"import 1 1", store.PrivStaff},
		{"delete a", store.PrivRoot},
		{"show finance", store.PrivRoot},
		{"log", store.PrivRoot},
		{"report finance", store.PrivRoot},
	}
	for _, tt := range tests {
		cmd, err := command.Parse(tt.line)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.line, err)
		}
		if got := cmd.MinPrivilege(); got != tt.want {
			t.Errorf("%s: MinPrivilege() = %d, want %d", tt.line, got, tt.want)
		}
	}
}
