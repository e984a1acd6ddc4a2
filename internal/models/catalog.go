package models

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/pricing"
)

// Catalog: bir mağazanın fiyat listesi. Aynı taban ürün listesi birden çok
// katalogda farklı fiyat ve durumla yayınlanabilir.
type Catalog struct {
	ID        uint `gorm:"primaryKey"`
	StoreID   uint `gorm:"index;not null"`
	Store     Store
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatalogProduct: katalog üyeliği + katalog×ürün override kaydı tek satırda.
// Override alanlarının nil olması "ürün seviyesi hesaplamadan miras al"
// demektir.
//
// DİKKAT: FullPerKg/HalfPerKg/QuarterPerKg kg BAŞINA fiyattır, PortionPrice
// ise sabit nihai fiyattır. Product.Custom*Price alanlarının tamamı nihai
// fiyat olduğundan bu birim asimetrisi şaşırtıcıdır; kaynak sistemle
// uyumluluk için aynen korunuyor.
type CatalogProduct struct {
	ID        uint `gorm:"primaryKey"`
	CatalogID uint `gorm:"index;not null;uniqueIndex:idx_catalog_product"`
	Catalog   Catalog
	ProductID uint `gorm:"index;not null;uniqueIndex:idx_catalog_product"`
	Product   Product

	FullPerKg    *decimal.Decimal `gorm:"type:decimal(16,2)"`
	HalfPerKg    *decimal.Decimal `gorm:"type:decimal(16,2)"`
	QuarterPerKg *decimal.Decimal `gorm:"type:decimal(16,2)"`
	PortionPrice *decimal.Decimal `gorm:"type:decimal(16,2)"`

	// in_stock | pre_order | out_of_stock | coming_soon | hidden; nil = miras.
	Status *string `gorm:"size:20"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Override: GORM kaydını motorun override şekline eşler.
func (cp *CatalogProduct) Override() *pricing.CatalogOverride {
	ov := &pricing.CatalogOverride{
		FullPerKg:    cp.FullPerKg,
		HalfPerKg:    cp.HalfPerKg,
		QuarterPerKg: cp.QuarterPerKg,
		PortionPrice: cp.PortionPrice,
	}
	if cp.Status != nil {
		s := pricing.Status(*cp.Status)
		ov.Status = &s
	}
	return ov
}
