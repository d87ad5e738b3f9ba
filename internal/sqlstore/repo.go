package sqlstore

import (
	"context"
	"errors"

	"github.com/maksvovk/store-management/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sqlstore repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateProduct(ctx context.Context, row *models.ProductRow) (*models.ProductRow, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindProductByID(ctx context.Context, id int64) (*models.ProductRow, error) {
	var row models.ProductRow
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindProductByBarcode(ctx context.Context, barcode string) (*models.ProductRow, error) {
	var row models.ProductRow
	err := r.db.WithContext(ctx).
		Where("barcode = ?", barcode).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) UpdateProduct(ctx context.Context, row *models.ProductRow) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *repository) DeleteProduct(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ProductRow{}).Error
}

func (r *repository) CreateCustomer(ctx context.Context, row *models.CustomerRow) (*models.CustomerRow, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindCustomerByPhone(ctx context.Context, phone string) (*models.CustomerRow, error) {
	var row models.CustomerRow
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) CreatePurchase(ctx context.Context, row *models.PurchaseRow) (*models.PurchaseRow, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) FindPurchaseByReference(ctx context.Context, reference string) (*models.PurchaseRow, error) {
	var row models.PurchaseRow
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("reference = ?", reference).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
