package registry

import (
	"github.com/maksvovk/store-management/internal/catalog"
	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
)

// Relation maintenance. Each parent/child link is stored exactly once on the
// child record (the arena redesign of the original bidirectional
// collections); the registry validates both ends and serves the derived
// reverse views below.

// AssignProductCategory binds a product to a category, detaching it from any
// previous one implicitly since the membership is a single field.
func (r *Registry) AssignProductCategory(product *catalog.Product, category *catalog.Category) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Product instance, got nil")
	}
	if category == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Category instance, got nil")
	}
	if _, ok := r.productsByID[product.ID()]; !ok {
		return pkgerrors.Newf(pkgerrors.CodeValue, "product %q is not registered", product.Name())
	}
	if _, ok := r.categoriesByID[category.ID()]; !ok {
		return pkgerrors.Newf(pkgerrors.CodeValue, "category %q is not registered", category.Name())
	}
	product.SetCategory(category.ID())
	return nil
}

// DetachProductCategory clears a product's category membership.
func (r *Registry) DetachProductCategory(product *catalog.Product) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Product instance, got nil")
	}
	product.ClearCategory()
	return nil
}

// AssignProductStore binds a product to a store.
func (r *Registry) AssignProductStore(product *catalog.Product, store *catalog.Store) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Product instance, got nil")
	}
	if store == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Store instance, got nil")
	}
	if _, ok := r.productsByID[product.ID()]; !ok {
		return pkgerrors.Newf(pkgerrors.CodeValue, "product %q is not registered", product.Name())
	}
	if _, ok := r.storesByID[store.ID()]; !ok {
		return pkgerrors.Newf(pkgerrors.CodeValue, "store %q is not registered", store.Name())
	}
	product.SetStore(store.ID())
	return nil
}

// DetachProductStore clears a product's store membership.
func (r *Registry) DetachProductStore(product *catalog.Product) error {
	if product == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Product instance, got nil")
	}
	product.ClearStore()
	return nil
}

// AssignCategoryStore binds a category to a store.
func (r *Registry) AssignCategoryStore(category *catalog.Category, store *catalog.Store) error {
	if category == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Category instance, got nil")
	}
	if store == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Store instance, got nil")
	}
	if _, ok := r.categoriesByID[category.ID()]; !ok {
		return pkgerrors.Newf(pkgerrors.CodeValue, "category %q is not registered", category.Name())
	}
	if _, ok := r.storesByID[store.ID()]; !ok {
		return pkgerrors.Newf(pkgerrors.CodeValue, "store %q is not registered", store.Name())
	}
	category.SetStore(store.ID())
	return nil
}

// DetachCategoryStore clears a category's store membership.
func (r *Registry) DetachCategoryStore(category *catalog.Category) error {
	if category == nil {
		return pkgerrors.New(pkgerrors.CodeType, "expected Category instance, got nil")
	}
	category.ClearStore()
	return nil
}

// ProductsInCategory derives the category's member list in insertion order.
func (r *Registry) ProductsInCategory(categoryID int64) []*catalog.Product {
	var out []*catalog.Product
	for _, product := range r.products {
		if product.CategoryID() == categoryID && categoryID != 0 {
			out = append(out, product)
		}
	}
	return out
}

// ProductsInStore derives the store's product list in insertion order.
func (r *Registry) ProductsInStore(storeID int64) []*catalog.Product {
	var out []*catalog.Product
	for _, product := range r.products {
		if product.StoreID() == storeID && storeID != 0 {
			out = append(out, product)
		}
	}
	return out
}

// CategoriesInStore derives the store's category list in insertion order.
func (r *Registry) CategoriesInStore(storeID int64) []*catalog.Category {
	var out []*catalog.Category
	for _, category := range r.categories {
		if category.StoreID() == storeID && storeID != 0 {
			out = append(out, category)
		}
	}
	return out
}
