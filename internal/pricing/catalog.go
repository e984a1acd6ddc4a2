package pricing

import "github.com/shopspring/decimal"

type Status string

const (
	StatusInStock    Status = "in_stock"
	StatusPreOrder   Status = "pre_order"
	StatusOutOfStock Status = "out_of_stock"
	StatusComingSoon Status = "coming_soon"
	StatusHidden     Status = "hidden"
)

// ValidStatus: katalog override kaydına yazılabilecek durumlar.
func ValidStatus(s Status) bool {
	switch s {
	case StatusInStock, StatusPreOrder, StatusOutOfStock, StatusComingSoon, StatusHidden:
		return true
	}
	return false
}

// CatalogOverride: katalog×ürün bazında fiyat ve durum override'ları.
// DİKKAT: FullPerKg/HalfPerKg/QuarterPerKg kg BAŞINA fiyattır ve uygulanırken
// ilgili ağırlık kesriyle çarpılır; PortionPrice ise NİHAİ sabit fiyattır.
// Ürün seviyesindeki CustomVariantPrices'ın tamamı nihai fiyat olduğundan bu
// asimetri şaşırtıcıdır ama kaynak sistemle uyumluluk için aynen korunur.
// Alanın nil olması "ürün seviyesi hesaplamadan miras al" demektir.
type CatalogOverride struct {
	FullPerKg    *decimal.Decimal
	HalfPerKg    *decimal.Decimal
	QuarterPerKg *decimal.Decimal
	PortionPrice *decimal.Decimal
	Status       *Status
}

// Product: çözümleme motorunun girdi kaydı. Persistence katmanı modeli bu
// şekle eşler; motor hiçbir I/O yapmaz.
type Product struct {
	BuyPrice  *decimal.Decimal
	BasePrice decimal.Decimal
	Markup    *Markup
	Packaging Packaging
	Quantity  int
	IsActive  bool
}

// Resolution: bir ürünün tek bir katalog bağlamındaki nihai hali.
type Resolution struct {
	// UnitPrice: birim satış fiyatı; VariantPrices nil olduğunda tek "ekle"
	// aksiyonunun fiyatıdır.
	UnitPrice     decimal.Decimal
	VariantPrices VariantPriceMap
	Status        Status
	Visible       bool
	CanOrder      bool
}

// VariantPrice: istenen variant'ın fiyatı. Variant haritası yoksa yalnız
// Full=0 birim fiyattan satılabilir.
func (r Resolution) VariantPrice(index int) (decimal.Decimal, bool) {
	if r.VariantPrices == nil {
		if index == VariantFull {
			return r.UnitPrice, true
		}
		return decimal.Decimal{}, false
	}
	p, ok := r.VariantPrices[index]
	return p, ok
}

// ResolveForCatalog: ürün kaydını opsiyonel katalog override'ıyla çözümler.
// Beş ayrı ekranda kopyalanmış fallback mantığının tek kaynağı burasıdır.
//
// Head ürünlerde full/half/quarter override'ları kg başınadır: uygulanmadan
// önce w, w/2, w/4 ile çarpılır — override'sız türetmeyle birebir aynı aile.
// Porsiyon override'ı sabit nihai fiyattır, ağırlıkla çarpılmaz. Override
// hesaplanan değeri harmanlamaz, yerine GEÇER. Piece modda fiyat override'ı
// uygulanmaz (kaynak davranışı); durum override'ı her paketleme tipinde
// geçerlidir.
//
// Durum zinciri: override.Status ?? (aktif ve stok > 0 ? in_stock : out_of_stock).
// hidden ürün kataloğun sipariş edilebilir kümesinden üstte düşürülür; motor
// yine de fiyatları hesaplar (admin önizlemesi için) ve Visible=false işaretler.
func ResolveForCatalog(p Product, ov *CatalogOverride) Resolution {
	sale := ResolveSalePrice(p.BuyPrice, p.Markup, p.BasePrice)
	prices := ComputeVariantPrices(sale, p.Packaging)

	if ov != nil && prices != nil && p.Packaging.Type == PackagingHead {
		w := *p.Packaging.UnitWeight
		if ov.FullPerKg != nil {
			prices[VariantFull] = ov.FullPerKg.Mul(w)
		}
		if ov.HalfPerKg != nil {
			prices[VariantHalf] = ov.HalfPerKg.Mul(w.Div(two))
		}
		if ov.QuarterPerKg != nil {
			prices[VariantQuarter] = ov.QuarterPerKg.Mul(w.Div(four))
		}
		if ov.PortionPrice != nil {
			prices[VariantPortion] = *ov.PortionPrice
		}
	}

	status := resolveStatus(p, ov)

	return Resolution{
		UnitPrice:     sale,
		VariantPrices: prices,
		Status:        status,
		Visible:       status != StatusHidden,
		CanOrder:      status == StatusInStock || status == StatusPreOrder,
	}
}

func resolveStatus(p Product, ov *CatalogOverride) Status {
	if ov != nil && ov.Status != nil {
		return *ov.Status
	}
	if p.IsActive && p.Quantity > 0 {
		return StatusInStock
	}
	return StatusOutOfStock
}
