package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order: verilen siparişin değişmez kopyası.
type Order struct {
	ID        uint   `gorm:"primaryKey"`
	Number    string `gorm:"size:36;not null;uniqueIndex"`
	UserID    uint   `gorm:"index;not null"`
	User      User
	StoreID   uint `gorm:"index;not null"`
	Store     Store
	CatalogID uint            `gorm:"not null"`
	Total     decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	CreatedAt time.Time

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE"`
}

// OrderItem: sipariş satırı, yazıldıktan sonra değişmez. Name variant ekli
// gösterim adıdır (ör. "Сыр (½)"). VariantIndex yazma anında kaydedilir;
// addaki etiketi ayrıştırmak yalnız bu alanı taşımayan eski satırlar için
// okuma tarafında geri düşüştür. ProductID ürün silinirse NULL'a düşebilir;
// satırın kendisi tarihsel kayıt olarak kalır.
type OrderItem struct {
	ID           uint            `gorm:"primaryKey"`
	OrderID      uint            `gorm:"index;not null"`
	ProductID    *uint           `gorm:"index"`
	Name         string          `gorm:"size:150;not null"`
	VariantIndex *int
	Quantity     int             `gorm:"not null"`
	Price        decimal.Decimal `gorm:"type:decimal(16,2);not null"`
}
