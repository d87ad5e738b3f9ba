package catalog

import (
	"strings"

	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

// Store is the top-level retail location. Its category and product
// collections are derived views served by the registry.
type Store struct {
	id      int64
	name    string
	address string
}

// NewStore validates and builds an unregistered store record. Address
// uniqueness is enforced by the registry at registration time.
func NewStore(name, address string) (*Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "store name must be a non-empty string")
	}
	if strings.TrimSpace(address) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "store address must be a non-empty string")
	}
	return &Store{name: name, address: address}, nil
}

// ID returns the registry-assigned identifier, 0 when unregistered.
func (s *Store) ID() int64 {
	return s.id
}

// AssignID sets the identifier exactly once.
func (s *Store) AssignID(id int64) error {
	if s.id != 0 {
		return pkgerrors.Newf(pkgerrors.CodeValue, "store %q already has id %d", s.name, s.id)
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValue, "store id must be positive")
	}
	s.id = id
	return nil
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValue, "store name must be a non-empty string")
	}
	s.name = name
	return nil
}

func (s *Store) Address() string {
	return s.address
}

func (s *Store) SetAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return pkgerrors.New(pkgerrors.CodeValue, "store address must be a non-empty string")
	}
	s.address = address
	return nil
}
