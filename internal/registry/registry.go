package registry

import (
	"strings"

	"github.com/google/uuid"
	"github.com/maksvovk/store-management/internal/catalog"
	"github.com/maksvovk/store-management/internal/purchases"
	"github.com/maksvovk/store-management/internal/users"
	"github.com/maksvovk/store-management/pkg/enums"
	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

// Registry is the in-memory entity database. Each kind keeps an
// insertion-ordered collection plus lookup indexes, and identifiers are
// assigned monotonically per kind on first registration.
//
// Re-adding a record that already carries an identifier is a no-op when the
// record is known to this registry; a record carrying a foreign identifier is
// rejected.
type Registry struct {
	name string

	nextIDs map[enums.EntityKind]int64

	stores         []*catalog.Store
	storesByID     map[int64]*catalog.Store
	storeByAddress map[string]*catalog.Store

	categories     []*catalog.Category
	categoriesByID map[int64]*catalog.Category

	products     []*catalog.Product
	productsByID map[int64]*catalog.Product

	cashiers     []*users.Cashier
	cashiersByID map[int64]*users.Cashier

	customers       []*users.Customer
	customersByID   map[int64]*users.Customer
	customerByPhone map[string]*users.Customer

	purchases     []*purchases.Purchase
	purchasesByID map[int64]*purchases.Purchase
	purchaseByRef map[uuid.UUID]*purchases.Purchase
}

// New builds an empty registry.
func New(name string) *Registry {
	return &Registry{
		name:            name,
		nextIDs:         map[enums.EntityKind]int64{},
		storesByID:      map[int64]*catalog.Store{},
		storeByAddress:  map[string]*catalog.Store{},
		categoriesByID:  map[int64]*catalog.Category{},
		productsByID:    map[int64]*catalog.Product{},
		cashiersByID:    map[int64]*users.Cashier{},
		customersByID:   map[int64]*users.Customer{},
		customerByPhone: map[string]*users.Customer{},
		purchasesByID:   map[int64]*purchases.Purchase{},
		purchaseByRef:   map[uuid.UUID]*purchases.Purchase{},
	}
}

func (r *Registry) Name() string {
	return r.name
}

func (r *Registry) nextID(kind enums.EntityKind) int64 {
	r.nextIDs[kind]++
	return r.nextIDs[kind]
}

// AddStores registers stores, enforcing address uniqueness.
func (r *Registry) AddStores(stores ...*catalog.Store) error {
	for _, store := range stores {
		if store == nil {
			return pkgerrors.New(pkgerrors.CodeType, "expected Store instance, got nil")
		}
	}
	for _, store := range stores {
		if store.ID() != 0 {
			if _, ok := r.storesByID[store.ID()]; ok {
				continue
			}
			return pkgerrors.Newf(pkgerrors.CodeValue, "store %q carries foreign id %d", store.Name(), store.ID())
		}
		address := strings.TrimSpace(store.Address())
		if existing, ok := r.storeByAddress[address]; ok {
			return pkgerrors.Newf(pkgerrors.CodeValue, "address %q already registered to store %q", address, existing.Name())
		}
		if err := store.AssignID(r.nextID(enums.EntityKindStore)); err != nil {
			return err
		}
		r.stores = append(r.stores, store)
		r.storesByID[store.ID()] = store
		r.storeByAddress[address] = store
	}
	return nil
}

// AddCategories registers categories.
func (r *Registry) AddCategories(categories ...*catalog.Category) error {
	for _, category := range categories {
		if category == nil {
			return pkgerrors.New(pkgerrors.CodeType, "expected Category instance, got nil")
		}
	}
	for _, category := range categories {
		if category.ID() != 0 {
			if _, ok := r.categoriesByID[category.ID()]; ok {
				continue
			}
			return pkgerrors.Newf(pkgerrors.CodeValue, "category %q carries foreign id %d", category.Name(), category.ID())
		}
		if err := category.AssignID(r.nextID(enums.EntityKindCategory)); err != nil {
			return err
		}
		r.categories = append(r.categories, category)
		r.categoriesByID[category.ID()] = category
	}
	return nil
}

// AddProducts registers products.
func (r *Registry) AddProducts(products ...*catalog.Product) error {
	for _, product := range products {
		if product == nil {
			return pkgerrors.New(pkgerrors.CodeType, "expected Product instance, got nil")
		}
	}
	for _, product := range products {
		if product.ID() != 0 {
			if _, ok := r.productsByID[product.ID()]; ok {
				continue
			}
			return pkgerrors.Newf(pkgerrors.CodeValue, "product %q carries foreign id %d", product.Name(), product.ID())
		}
		if err := product.AssignID(r.nextID(enums.EntityKindProduct)); err != nil {
			return err
		}
		r.products = append(r.products, product)
		r.productsByID[product.ID()] = product
	}
	return nil
}

// AddCashiers registers cashiers.
func (r *Registry) AddCashiers(cashiers ...*users.Cashier) error {
	for _, cashier := range cashiers {
		if cashier == nil {
			return pkgerrors.New(pkgerrors.CodeType, "expected Cashier instance, got nil")
		}
	}
	for _, cashier := range cashiers {
		if cashier.ID() != 0 {
			if _, ok := r.cashiersByID[cashier.ID()]; ok {
				continue
			}
			return pkgerrors.Newf(pkgerrors.CodeValue, "cashier %s %s carries foreign id %d", cashier.Name(), cashier.Surname(), cashier.ID())
		}
		if err := cashier.AssignID(r.nextID(enums.EntityKindCashier)); err != nil {
			return err
		}
		r.cashiers = append(r.cashiers, cashier)
		r.cashiersByID[cashier.ID()] = cashier
	}
	return nil
}

// AddCustomers registers customers, enforcing phone uniqueness so the phone
// lookup stays exact.
func (r *Registry) AddCustomers(customers ...*users.Customer) error {
	for _, customer := range customers {
		if customer == nil {
			return pkgerrors.New(pkgerrors.CodeType, "expected Customer instance, got nil")
		}
	}
	for _, customer := range customers {
		if customer.ID() != 0 {
			if _, ok := r.customersByID[customer.ID()]; ok {
				continue
			}
			return pkgerrors.Newf(pkgerrors.CodeValue, "customer %s %s carries foreign id %d", customer.Name(), customer.Surname(), customer.ID())
		}
		if existing, ok := r.customerByPhone[customer.Phone()]; ok {
			return pkgerrors.Newf(pkgerrors.CodeValue, "phone %s already registered to customer %s %s", customer.Phone(), existing.Name(), existing.Surname())
		}
		if err := customer.AssignID(r.nextID(enums.EntityKindCustomer)); err != nil {
			return err
		}
		r.customers = append(r.customers, customer)
		r.customersByID[customer.ID()] = customer
		r.customerByPhone[customer.Phone()] = customer
	}
	return nil
}

// AddPurchase registers a receipt. The add is idempotent: a purchase whose
// reference is already present is left untouched.
func (r *Registry) AddPurchase(p *purchases.Purchase) error {
	if p == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Purchase instance, got nil")
	}
	if _, ok := r.purchaseByRef[p.Reference()]; ok {
		return nil
	}
	if p.ID() != 0 {
		return pkgerrors.Newf(pkgerrors.CodeValue, "purchase %s carries foreign id %d", p.Reference(), p.ID())
	}
	if err := p.AssignID(r.nextID(enums.EntityKindPurchase)); err != nil {
		return err
	}
	r.purchases = append(r.purchases, p)
	r.purchasesByID[p.ID()] = p
	r.purchaseByRef[p.Reference()] = p
	return nil
}

// RemoveProducts drops products from the arena and clears their relations.
func (r *Registry) RemoveProducts(products ...*catalog.Product) error {
	for _, product := range products {
		if product == nil {
			return pkgerrors.New(pkgerrors.CodeType, "expected Product instance, got nil")
		}
	}
	for _, product := range products {
		if _, ok := r.productsByID[product.ID()]; !ok {
			continue
		}
		delete(r.productsByID, product.ID())
		r.products = removeFromSlice(r.products, product)
		product.ClearCategory()
		product.ClearStore()
	}
	return nil
}

// RemoveCategories drops categories and detaches their member products.
func (r *Registry) RemoveCategories(categories ...*catalog.Category) error {
	for _, category := range categories {
		if category == nil {
			return pkgerrors.New(pkgerrors.CodeType, "expected Category instance, got nil")
		}
	}
	for _, category := range categories {
		if _, ok := r.categoriesByID[category.ID()]; !ok {
			continue
		}
		for _, product := range r.products {
			if product.CategoryID() == category.ID() {
				product.ClearCategory()
			}
		}
		delete(r.categoriesByID, category.ID())
		r.categories = removeFromSlice(r.categories, category)
		category.ClearStore()
	}
	return nil
}

// RemoveStores drops stores and detaches dependent categories and products.
func (r *Registry) RemoveStores(stores ...*catalog.Store) error {
	for _, store := range stores {
		if store == nil {
			return pkgerrors.New(pkgerrors.CodeType, "expected Store instance, got nil")
		}
	}
	for _, store := range stores {
		if _, ok := r.storesByID[store.ID()]; !ok {
			continue
		}
		for _, category := range r.categories {
			if category.StoreID() == store.ID() {
				category.ClearStore()
			}
		}
		for _, product := range r.products {
			if product.StoreID() == store.ID() {
				product.ClearStore()
			}
		}
		delete(r.storesByID, store.ID())
		delete(r.storeByAddress, strings.TrimSpace(store.Address()))
		r.stores = removeFromSlice(r.stores, store)
	}
	return nil
}

// StoreByID looks up a store; absence is a normal outcome.
func (r *Registry) StoreByID(id int64) (*catalog.Store, bool) {
	store, ok := r.storesByID[id]
	return store, ok
}

// CategoryByID looks up a category.
func (r *Registry) CategoryByID(id int64) (*catalog.Category, bool) {
	category, ok := r.categoriesByID[id]
	return category, ok
}

// ProductByID looks up a product.
func (r *Registry) ProductByID(id int64) (*catalog.Product, bool) {
	product, ok := r.productsByID[id]
	return product, ok
}

// CashierByID looks up a cashier.
func (r *Registry) CashierByID(id int64) (*users.Cashier, bool) {
	cashier, ok := r.cashiersByID[id]
	return cashier, ok
}

// CustomerByID looks up a customer.
func (r *Registry) CustomerByID(id int64) (*users.Customer, bool) {
	customer, ok := r.customersByID[id]
	return customer, ok
}

// FindCustomerByPhone resolves a customer by exact phone match. The phone is
// normalized the same way customer records normalize theirs; a malformed
// phone simply finds nothing.
func (r *Registry) FindCustomerByPhone(phone string) (*users.Customer, bool) {
	normalized, err := users.NormalizePhone(phone)
	if err != nil {
		return nil, false
	}
	customer, ok := r.customerByPhone[normalized]
	return customer, ok
}

// PurchaseByReference looks up a receipt by its reference.
func (r *Registry) PurchaseByReference(ref uuid.UUID) (*purchases.Purchase, bool) {
	p, ok := r.purchaseByRef[ref]
	return p, ok
}

// Stores returns the registered stores in insertion order.
func (r *Registry) Stores() []*catalog.Store {
	return copySlice(r.stores)
}

// Categories returns the registered categories in insertion order.
func (r *Registry) Categories() []*catalog.Category {
	return copySlice(r.categories)
}

// Products returns the registered products in insertion order.
func (r *Registry) Products() []*catalog.Product {
	return copySlice(r.products)
}

// Cashiers returns the registered cashiers in insertion order.
func (r *Registry) Cashiers() []*users.Cashier {
	return copySlice(r.cashiers)
}

// Customers returns the registered customers in insertion order.
func (r *Registry) Customers() []*users.Customer {
	return copySlice(r.customers)
}

// Purchases returns the registered receipts in checkout order.
func (r *Registry) Purchases() []*purchases.Purchase {
	return copySlice(r.purchases)
}

func removeFromSlice[T comparable](items []T, target T) []T {
	for i, item := range items {
		if item == target {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

func copySlice[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
