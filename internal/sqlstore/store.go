// Package sqlstore persists catalog products, customers and purchase receipts
// through GORM. It is an optional adapter: the in-memory registry stays the
// source of truth and the Store is injected where persistence is wanted.
package sqlstore

import (
	"context"

	"github.com/maksvovk/store-management/internal/catalog"
	"github.com/maksvovk/store-management/internal/purchases"
	"github.com/maksvovk/store-management/internal/users"
	"github.com/maksvovk/store-management/pkg/db"
	"github.com/maksvovk/store-management/pkg/db/models"
	pkgerrors "github.com/maksvovk/store-management/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Store is the persistence adapter. Writes run inside a transaction;
// inserts are insert-if-absent keyed by barcode, phone or receipt reference.
type Store struct {
	tx   txRunner
	repo Repository
}

// New builds a Store on top of the shared DB client.
func New(client *db.Client) *Store {
	return &Store{tx: client, repo: NewRepository(client.DB())}
}

// Migrate creates or updates the adapter's tables.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.ProductRow{},
		&models.CustomerRow{},
		&models.PurchaseRow{},
		&models.PurchaseLineRow{},
	)
}

// InsertProducts persists products keyed by barcode. A product whose barcode
// is already taken fails the whole batch with a value error naming the
// existing row.
func (s *Store) InsertProducts(ctx context.Context, products ...*catalog.Product) error {
	for _, p := range products {
		if p == nil {
			return pkgerrors.New(pkgerrors.CodeType, "product record is nil")
		}
		if p.Barcode() == "" {
			return pkgerrors.Newf(pkgerrors.CodeValue, "product %q has no barcode", p.Name())
		}
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, p := range products {
			existing, err := repo.FindProductByBarcode(ctx, p.Barcode())
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up product by barcode")
			}
			if existing != nil {
				return pkgerrors.Newf(pkgerrors.CodeValue,
					"barcode %s already belongs to product %q (id %d)",
					existing.Barcode, existing.Name, existing.ID)
			}
			if _, err := repo.CreateProduct(ctx, productRow(p)); err != nil {
				if db.IsUniqueViolation(err, "barcode") {
					return pkgerrors.Newf(pkgerrors.CodeValue,
						"barcode %s already belongs to another product", p.Barcode())
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
			}
		}
		return nil
	})
}

// FindProductByID returns the stored product row; not-found is (nil, false).
func (s *Store) FindProductByID(ctx context.Context, id int64) (*models.ProductRow, bool, error) {
	row, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product by id")
	}
	return row, row != nil, nil
}

// FindProductByBarcode returns the stored product row; not-found is (nil, false).
func (s *Store) FindProductByBarcode(ctx context.Context, barcode string) (*models.ProductRow, bool, error) {
	row, err := s.repo.FindProductByBarcode(ctx, barcode)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find product by barcode")
	}
	return row, row != nil, nil
}

// UpdateProducts rewrites previously inserted rows. A row without an ID has
// never been stored and fails the batch with a value error.
func (s *Store) UpdateProducts(ctx context.Context, rows ...*models.ProductRow) error {
	for _, row := range rows {
		if row == nil {
			return pkgerrors.New(pkgerrors.CodeType, "product row is nil")
		}
		if row.ID == 0 {
			return pkgerrors.Newf(pkgerrors.CodeValue, "product %q has no stored id", row.Name)
		}
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, row := range rows {
			if err := repo.UpdateProduct(ctx, row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
			}
		}
		return nil
	})
}

// DeleteProducts removes previously inserted rows, with the same no-ID rule
// as UpdateProducts.
func (s *Store) DeleteProducts(ctx context.Context, rows ...*models.ProductRow) error {
	for _, row := range rows {
		if row == nil {
			return pkgerrors.New(pkgerrors.CodeType, "product row is nil")
		}
		if row.ID == 0 {
			return pkgerrors.Newf(pkgerrors.CodeValue, "product %q has no stored id", row.Name)
		}
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, row := range rows {
			if err := repo.DeleteProduct(ctx, row.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
			}
		}
		return nil
	})
}

// InsertCustomer persists a customer keyed by phone, insert-if-absent.
func (s *Store) InsertCustomer(ctx context.Context, customer *users.Customer) error {
	if customer == nil {
		return pkgerrors.New(pkgerrors.CodeType, "customer record is nil")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.FindCustomerByPhone(ctx, customer.Phone())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up customer by phone")
		}
		if existing != nil {
			return pkgerrors.Newf(pkgerrors.CodeValue,
				"phone %s already belongs to customer %s %s (id %d)",
				existing.Phone, existing.Name, existing.Surname, existing.ID)
		}
		if _, err := repo.CreateCustomer(ctx, customerRow(customer)); err != nil {
			if db.IsUniqueViolation(err, "phone") {
				return pkgerrors.Newf(pkgerrors.CodeValue,
					"phone %s already belongs to another customer", customer.Phone())
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert customer")
		}
		return nil
	})
}

// FindCustomerByPhone returns the stored customer row; not-found is (nil, false).
func (s *Store) FindCustomerByPhone(ctx context.Context, phone string) (*models.CustomerRow, bool, error) {
	row, err := s.repo.FindCustomerByPhone(ctx, phone)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find customer by phone")
	}
	return row, row != nil, nil
}

// SavePurchase stores a receipt with its line snapshots, insert-if-absent by
// the receipt reference. It satisfies checkout.PurchaseSink.
func (s *Store) SavePurchase(ctx context.Context, receipt *purchases.Purchase) error {
	if receipt == nil {
		return pkgerrors.New(pkgerrors.CodeType, "purchase record is nil")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.FindPurchaseByReference(ctx, receipt.Reference().String())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up purchase by reference")
		}
		if existing != nil {
			return nil
		}
		if _, err := repo.CreatePurchase(ctx, purchaseRow(receipt)); err != nil {
			if db.IsUniqueViolation(err, "reference") {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert purchase")
		}
		return nil
	})
}

// FindPurchaseByReference returns the stored receipt with its lines;
// not-found is (nil, false).
func (s *Store) FindPurchaseByReference(ctx context.Context, reference string) (*models.PurchaseRow, bool, error) {
	row, err := s.repo.FindPurchaseByReference(ctx, reference)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find purchase by reference")
	}
	return row, row != nil, nil
}
