package sqlstore

import (
	"github.com/maksvovk/store-management/internal/catalog"
	"github.com/maksvovk/store-management/internal/purchases"
	"github.com/maksvovk/store-management/internal/users"
	"github.com/maksvovk/store-management/pkg/db/models"
)

func productRow(p *catalog.Product) *models.ProductRow {
	row := &models.ProductRow{
		Barcode:    p.Barcode(),
		Name:       p.Name(),
		PriceCents: p.PriceCents(),
		Quantity:   p.Quantity(),
	}
	if id := p.CategoryID(); id != 0 {
		row.CategoryID = &id
	}
	return row
}

func customerRow(c *users.Customer) *models.CustomerRow {
	return &models.CustomerRow{
		Name:          c.Name(),
		Surname:       c.Surname(),
		Phone:         c.Phone(),
		CashbackCents: c.CashbackCents(),
		Percent:       c.Percent(),
	}
}

func purchaseRow(p *purchases.Purchase) *models.PurchaseRow {
	row := &models.PurchaseRow{
		Reference:         p.Reference().String(),
		CustomerID:        p.CustomerID(),
		CashbackUsedCents: p.CashbackUsedCents(),
		TotalCents:        p.TotalCents(),
		PurchasedAt:       p.CreatedAt(),
	}
	if id := p.StoreID(); id != 0 {
		row.StoreID = &id
	}
	if id := p.CashierID(); id != 0 {
		row.CashierID = &id
	}
	for _, line := range p.Lines() {
		row.Lines = append(row.Lines, models.PurchaseLineRow{
			ProductID:      line.ProductID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
		})
	}
	return row
}
