package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart: müşteri×mağaza başına tek sepet. Sepet mutasyonları tek mantıksal
// aktör (müşterinin kendi oturumu) tarafından yapılır; oturumlar arası kilit
// gerekmez.
type Cart struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null;uniqueIndex:idx_user_store_cart"`
	User      User
	StoreID   uint `gorm:"index;not null;uniqueIndex:idx_user_store_cart"`
	Store     Store
	CatalogID uint `gorm:"not null"` // sepetin fiyatlandığı katalog
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []CartItem `gorm:"constraint:OnDelete:CASCADE"`
}

// CartItem: (cartID, productID, variantIndex) benzersizdir. PriceAtAdd ekleme
// anında çözümlenen fiyatın kopyasıdır; sepetteyken yeniden hesaplanmaz.
// Miktar sıfıra düşen satır silinir; checkout sepetin tamamını boşaltır.
type CartItem struct {
	ID           uint `gorm:"primaryKey"`
	CartID       uint `gorm:"index;not null;uniqueIndex:idx_cart_product_variant"`
	ProductID    uint `gorm:"index;not null;uniqueIndex:idx_cart_product_variant"`
	Product      Product
	VariantIndex int             `gorm:"not null;uniqueIndex:idx_cart_product_variant"`
	Quantity     int             `gorm:"not null"` // >= 1
	PriceAtAdd   decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
