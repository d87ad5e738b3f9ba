package catalog

import (
	"strings"

	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

// Product is a sellable item. Category and store membership is stored once,
// here, as arena identifiers; the registry exposes the reverse views.
type Product struct {
	id         int64
	name       string
	priceCents int64
	quantity   int64
	barcode    string
	categoryID int64
	storeID    int64
}

// NewProduct validates and builds an unregistered product record.
func NewProduct(name string, priceCents, quantity int64) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "product name must be a non-empty string")
	}
	if priceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "product price must be non-negative")
	}
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValue, "product quantity must be non-negative")
	}
	return &Product{
		name:       name,
		priceCents: priceCents,
		quantity:   quantity,
	}, nil
}

// ID returns the registry-assigned identifier, 0 when unregistered.
func (p *Product) ID() int64 {
	return p.id
}

// AssignID sets the identifier exactly once. The registry calls this on first
// registration; a second assignment is a ValueKind error.
func (p *Product) AssignID(id int64) error {
	if p.id != 0 {
		return pkgerrors.Newf(pkgerrors.CodeValue, "product %q already has id %d", p.name, p.id)
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValue, "product id must be positive")
	}
	p.id = id
	return nil
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValue, "product name must be a non-empty string")
	}
	p.name = name
	return nil
}

func (p *Product) PriceCents() int64 {
	return p.priceCents
}

func (p *Product) SetPriceCents(price int64) error {
	if price < 0 {
		return pkgerrors.New(pkgerrors.CodeValue, "product price must be non-negative")
	}
	p.priceCents = price
	return nil
}

func (p *Product) Quantity() int64 {
	return p.quantity
}

func (p *Product) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValue, "product quantity must be non-negative")
	}
	p.quantity = quantity
	return nil
}

// Decrement reduces stock by n units. Callers validate availability first;
// the quantity invariant still refuses to go below zero.
func (p *Product) Decrement(n int64) error {
	if n <= 0 {
		return pkgerrors.New(pkgerrors.CodeValue, "decrement must be positive")
	}
	if p.quantity < n {
		return pkgerrors.Newf(pkgerrors.CodeValue, "product %q has %d units, cannot remove %d", p.name, p.quantity, n)
	}
	p.quantity -= n
	return nil
}

// Barcode returns the unique key used by the SQL persistence adapter, empty
// when unset.
func (p *Product) Barcode() string {
	return p.barcode
}

func (p *Product) SetBarcode(barcode string) error {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" || !isDigits(barcode) {
		return pkgerrors.New(pkgerrors.CodeValue, "barcode must contain only digits")
	}
	p.barcode = barcode
	return nil
}

// CategoryID returns the owning category's arena identifier, 0 when detached.
func (p *Product) CategoryID() int64 {
	return p.categoryID
}

// SetCategory rebinds the product to a category. Normally driven by the
// registry, which validates the target and keeps the derived views coherent.
func (p *Product) SetCategory(categoryID int64) {
	p.categoryID = categoryID
}

// ClearCategory detaches the product from its category.
func (p *Product) ClearCategory() {
	p.categoryID = 0
}

// StoreID returns the owning store's arena identifier, 0 when detached.
func (p *Product) StoreID() int64 {
	return p.storeID
}

// SetStore rebinds the product to a store. Normally driven by the registry.
func (p *Product) SetStore(storeID int64) {
	p.storeID = storeID
}

// ClearStore detaches the product from its store.
func (p *Product) ClearStore() {
	p.storeID = 0
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
