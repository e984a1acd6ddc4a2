package models

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/pricing"
)

// Product: satıcının taban ürün kaydı. Fiyatlama alanları çözümleme motorunun
// girdisidir; nihai müşteri fiyatı her zaman katalog bağlamında hesaplanır.
type Product struct {
	ID      uint `gorm:"primaryKey"`
	StoreID uint `gorm:"index;not null"`
	Store   Store
	Name    string `gorm:"size:100;not null"`
	Unit    string `gorm:"size:20;not null"` // kg, шт vs.

	// Alış fiyatı + kâr kuralı varsa satış fiyatı onlardan türetilir; yoksa
	// BasePrice olduğu gibi kullanılır.
	BuyPrice     *decimal.Decimal `gorm:"type:decimal(16,2)"`
	BasePrice    decimal.Decimal  `gorm:"type:decimal(16,2);not null"`
	MarkupKind   *string          `gorm:"size:20"` // percent | fixed
	MarkupAmount *decimal.Decimal `gorm:"type:decimal(16,2)"`

	// Paketleme: head | piece | plain. UnitWeight yalnız head için anlamlıdır;
	// eksik veya <= 0 ise ürün plain gibi davranır.
	PackagingType string           `gorm:"size:10;not null;default:plain"`
	UnitWeight    *decimal.Decimal `gorm:"type:decimal(10,3)"`
	PortionWeight *decimal.Decimal `gorm:"type:decimal(10,3)"` // varsayılan 0.1 kg

	// Kesim başına NİHAİ fiyat override'ları (katalog override'larının aksine
	// kg başına değil).
	CustomFullPrice    *decimal.Decimal `gorm:"type:decimal(16,2)"`
	CustomHalfPrice    *decimal.Decimal `gorm:"type:decimal(16,2)"`
	CustomQuarterPrice *decimal.Decimal `gorm:"type:decimal(16,2)"`
	CustomPortionPrice *decimal.Decimal `gorm:"type:decimal(16,2)"`

	Quantity int  `gorm:"not null;default:0"`
	IsActive bool `gorm:"not null;default:true"`

	// Sıralı: Position variant indeksidir ve sabit kalmak zorundadır.
	PieceVariants []ProductPieceVariant `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductPieceVariant: adetli ürünün satılabilir birimi (koli / tek).
type ProductPieceVariant struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"index;not null"`
	Kind      string `gorm:"size:10;not null"` // box | single
	Quantity  int    `gorm:"not null"`         // koli başına adet (tek için 1)
	Position  int    `gorm:"not null"`         // variant indeksi
}

// VariantDisplayName: sepet ve sipariş satırlarının sakladığı gösterim adı;
// paketleme tipine uygun variant etiketi eklenir. PieceVariants'ın pozisyona
// göre sıralı yüklenmiş olması gerekir.
func (p *Product) VariantDisplayName(index int) string {
	return pricing.DisplayName(p.Name, p.PricingInput().Packaging, index)
}

// PricingInput: GORM kaydını motorun saf girdi şekline eşler.
func (p *Product) PricingInput() pricing.Product {
	var markup *pricing.Markup
	if p.MarkupKind != nil && p.MarkupAmount != nil {
		markup = &pricing.Markup{
			Kind:   pricing.MarkupKind(*p.MarkupKind),
			Amount: *p.MarkupAmount,
		}
	}

	pieces := make([]pricing.PieceVariant, 0, len(p.PieceVariants))
	for _, pv := range p.PieceVariants {
		pieces = append(pieces, pricing.PieceVariant{
			Kind:     pricing.PieceVariantKind(pv.Kind),
			Quantity: pv.Quantity,
		})
	}

	return pricing.Product{
		BuyPrice:  p.BuyPrice,
		BasePrice: p.BasePrice,
		Markup:    markup,
		Packaging: pricing.Packaging{
			Type:          pricing.PackagingType(p.PackagingType),
			UnitWeight:    p.UnitWeight,
			PortionWeight: p.PortionWeight,
			Custom: pricing.CustomVariantPrices{
				Full:    p.CustomFullPrice,
				Half:    p.CustomHalfPrice,
				Quarter: p.CustomQuarterPrice,
				Portion: p.CustomPortionPrice,
			},
			PieceVariants: pieces,
		},
		Quantity: p.Quantity,
		IsActive: p.IsActive,
	}
}
