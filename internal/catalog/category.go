package catalog

import (
	"strings"

	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

// Category groups products inside a store. Membership lives on the product
// side (Product.CategoryID); the registry derives the member list.
type Category struct {
	id      int64
	name    string
	storeID int64
}

// NewCategory validates and builds an unregistered category record.
func NewCategory(name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "category name must be a non-empty string")
	}
	return &Category{name: name}, nil
}

// ID returns the registry-assigned identifier, 0 when unregistered.
func (c *Category) ID() int64 {
	return c.id
}

// AssignID sets the identifier exactly once.
func (c *Category) AssignID(id int64) error {
	if c.id != 0 {
		return pkgerrors.Newf(pkgerrors.CodeValue, "category %q already has id %d", c.name, c.id)
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValue, "category id must be positive")
	}
	c.id = id
	return nil
}

func (c *Category) Name() string {
	return c.name
}

func (c *Category) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValue, "category name must be a non-empty string")
	}
	c.name = name
	return nil
}

// StoreID returns the parent store's arena identifier, 0 when detached.
func (c *Category) StoreID() int64 {
	return c.storeID
}

// SetStore rebinds the category to a store. Normally driven by the registry.
func (c *Category) SetStore(storeID int64) {
	c.storeID = storeID
}

// ClearStore detaches the category from its store.
func (c *Category) ClearStore() {
	c.storeID = 0
}
