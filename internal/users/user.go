package users

import (
	"strings"

	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

// User carries the identity fields shared by cashiers and customers. The
// original hierarchy collapses to struct embedding: Cashier and Customer both
// embed User, and only Customer carries the cashback ledger.
type User struct {
	id      int64
	name    string
	surname string
}

func newUser(name, surname string) (User, error) {
	if strings.TrimSpace(name) == "" {
		return User{}, pkgerrors.New(pkgerrors.CodeValue, "name must be a non-empty string")
	}
	if strings.TrimSpace(surname) == "" {
		return User{}, pkgerrors.New(pkgerrors.CodeValue, "surname must be a non-empty string")
	}
	return User{name: name, surname: surname}, nil
}

// ID returns the registry-assigned identifier, 0 when unregistered.
func (u *User) ID() int64 {
	return u.id
}

// AssignID sets the identifier exactly once.
func (u *User) AssignID(id int64) error {
	if u.id != 0 {
		return pkgerrors.Newf(pkgerrors.CodeValue, "user %s %s already has id %d", u.name, u.surname, u.id)
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValue, "user id must be positive")
	}
	u.id = id
	return nil
}

func (u *User) Name() string {
	return u.name
}

func (u *User) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValue, "name must be a non-empty string")
	}
	u.name = name
	return nil
}

func (u *User) Surname() string {
	return u.surname
}

func (u *User) SetSurname(surname string) error {
	if strings.TrimSpace(surname) == "" {
		return pkgerrors.New(pkgerrors.CodeValue, "surname must be a non-empty string")
	}
	u.surname = surname
	return nil
}

// Cashier operates a cash register. Identity only, no extra state.
type Cashier struct {
	User
}

// NewCashier validates and builds an unregistered cashier record.
func NewCashier(name, surname string) (*Cashier, error) {
	user, err := newUser(name, surname)
	if err != nil {
		return nil, err
	}
	return &Cashier{User: user}, nil
}
