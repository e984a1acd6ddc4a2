package pricing

import "github.com/shopspring/decimal"

type PackagingType string

const (
	// Head: ağırlık bazlı ürün (ör. peynir tekeri); tam, yarım, çeyrek veya
	// porsiyon olarak satılabilir.
	PackagingHead PackagingType = "head"
	// Piece: adetli ürün; tek tek veya sabit boyutlu koli olarak satılabilir.
	PackagingPiece PackagingType = "piece"
	// Plain: variant'sız ürün; tek "ekle" aksiyonu birim fiyattan çalışır.
	PackagingPlain PackagingType = "plain"
)

type PieceVariantKind string

const (
	PieceBox    PieceVariantKind = "box"
	PieceSingle PieceVariantKind = "single"
)

type PieceVariant struct {
	Kind     PieceVariantKind
	Quantity int
}

// CustomVariantPrices: ürün seviyesinde, kesim başına NİHAİ fiyat override'ları.
// Katalog override'larının aksine kg başına değildir; bu asimetri kaynak
// sistemden aynen korunuyor.
type CustomVariantPrices struct {
	Full    *decimal.Decimal
	Half    *decimal.Decimal
	Quarter *decimal.Decimal
	Portion *decimal.Decimal
}

type Packaging struct {
	Type          PackagingType
	UnitWeight    *decimal.Decimal // kg / tam ürün, yalnız head için
	PortionWeight *decimal.Decimal // merchant seçimi, varsayılan 0.1 kg
	Custom        CustomVariantPrices
	PieceVariants []PieceVariant
}

// VariantPriceMap: variant indeksi -> nihai müşteri fiyatı. Haritada olmayan
// indeks satın alınamaz. nil harita "variant yok" demektir; çağıran tek birim
// fiyatla Full=0 aksiyonuna düşer.
type VariantPriceMap map[int]decimal.Decimal

var (
	two  = decimal.NewFromInt(2)
	four = decimal.NewFromInt(4)
)

// firstPrice: sıralı override sağlayıcılarını ilk-eşleşme-kazanır mantığıyla
// değerlendirir. Zincirlenmiş ?? ifadeleri yerine öncelik sırası burada tek
// noktada test edilebilir durur.
func firstPrice(providers ...func() *decimal.Decimal) *decimal.Decimal {
	for _, p := range providers {
		if v := p(); v != nil {
			return v
		}
	}
	return nil
}

func fixed(v *decimal.Decimal) func() *decimal.Decimal {
	return func() *decimal.Decimal { return v }
}

func derived(v decimal.Decimal) func() *decimal.Decimal {
	return func() *decimal.Decimal { return &v }
}

// ComputeVariantPrices: birim satış fiyatı + paketleme bilgisinden variant
// fiyatlarını türetir. Saf fonksiyondur, I/O yapmaz.
//
//   - plain: nil döner.
//   - head: unitWeight yoksa veya <= 0 ise plain gibi davranır (nil). Aksi
//     halde full/half/quarter ağırlıktan türetilir, ürün seviyesi nihai fiyat
//     override'ları önceliklidir. Porsiyon asla otomatik türetilmez; porsiyon
//     ağırlığı merchant seçimi olduğundan açıkça fiyatlanmak zorundadır.
//   - piece: her tanımlı piece variant için salePerUnit * quantity.
func ComputeVariantPrices(salePerUnit decimal.Decimal, pkg Packaging) VariantPriceMap {
	switch pkg.Type {
	case PackagingHead:
		if pkg.UnitWeight == nil || !pkg.UnitWeight.IsPositive() {
			return nil
		}
		w := *pkg.UnitWeight

		prices := VariantPriceMap{}
		if full := firstPrice(fixed(pkg.Custom.Full), derived(salePerUnit.Mul(w))); full != nil {
			prices[VariantFull] = *full
		}
		if half := firstPrice(fixed(pkg.Custom.Half), derived(salePerUnit.Mul(w.Div(two)))); half != nil {
			prices[VariantHalf] = *half
		}
		if quarter := firstPrice(fixed(pkg.Custom.Quarter), derived(salePerUnit.Mul(w.Div(four)))); quarter != nil {
			prices[VariantQuarter] = *quarter
		}
		if pkg.Custom.Portion != nil {
			prices[VariantPortion] = *pkg.Custom.Portion
		}
		return prices
	case PackagingPiece:
		if len(pkg.PieceVariants) == 0 {
			return nil
		}
		prices := VariantPriceMap{}
		for i, pv := range pkg.PieceVariants {
			prices[i] = salePerUnit.Mul(decimal.NewFromInt(int64(pv.Quantity)))
		}
		return prices
	}
	return nil
}
