package sqlstore

import (
	"context"

	"github.com/maksvovk/store-management/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines row-level persistence operations for catalog, customer
// and receipt tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateProduct(ctx context.Context, row *models.ProductRow) (*models.ProductRow, error)
	FindProductByID(ctx context.Context, id int64) (*models.ProductRow, error)
	FindProductByBarcode(ctx context.Context, barcode string) (*models.ProductRow, error)
	UpdateProduct(ctx context.Context, row *models.ProductRow) error
	DeleteProduct(ctx context.Context, id int64) error
	CreateCustomer(ctx context.Context, row *models.CustomerRow) (*models.CustomerRow, error)
	FindCustomerByPhone(ctx context.Context, phone string) (*models.CustomerRow, error)
	CreatePurchase(ctx context.Context, row *models.PurchaseRow) (*models.PurchaseRow, error)
	FindPurchaseByReference(ctx context.Context, reference string) (*models.PurchaseRow, error)
}
