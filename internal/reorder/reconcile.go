package reorder

import (
	"github.com/shopspring/decimal"

	"storefront-backend/internal/pricing"
)

// OrderLineSnapshot: tarihsel sipariş satırı. Sipariş verildikten sonra
// değişmez. VariantIndex yazma anında kaydedilir; eski kayıtlarda yoktur ve
// addaki etiketten geri kazanılır.
type OrderLineSnapshot struct {
	ProductID    *uint
	Name         string // variant ekli ad, ör. "Сыр (½)"
	VariantIndex *int
	Quantity     int
	Price        decimal.Decimal
}

// ResolvedProduct: güncel kataloğun çözümlenmiş bir ürünü. Packaging satır
// adının paketleme tipine uygun variant etiketiyle kurulması için taşınır.
type ResolvedProduct struct {
	ProductID  uint
	Name       string
	Packaging  pricing.Packaging
	Resolution pricing.Resolution
}

// AvailableLine: hâlâ satılabilen satırın sepet projeksiyonu; fiyat tarihsel
// değil, GÜNCEL katalog çözümlemesinden gelir.
type AvailableLine struct {
	ProductID    uint
	Name         string
	VariantIndex int
	Quantity     int
	Price        decimal.Decimal
}

// FrozenLine: artık çözümlenemeyen satır; tarihsel fiyat ve ad olduğu gibi
// korunur.
type FrozenLine struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

type Result struct {
	Available        []AvailableLine
	Unavailable      []FrozenLine
	AvailableCount   int
	UnavailableCount int
}

// variantIndex: yapısal alan varsa onu kullanır; eski kayıtlar için addaki
// etiket ayrıştırma geri düşüşü devrededir. Kırılgan string-gömülü metadata
// bu adaptörün arkasında izole durur.
func variantIndex(line OrderLineSnapshot) int {
	if line.VariantIndex != nil {
		return *line.VariantIndex
	}
	return pricing.ParseVariantLabel(line.Name)
}

// Reconcile: tarihsel sipariş satırlarını güncel çözümlenmiş katalogla
// eşleştirir. Eşleşen satırlar güncel fiyatla "available", eşleşmeyenler
// tarihsel fiyatla "unavailable" olarak döner. Hiçbir satır düşürülmez ve
// hiçbir koşulda hata üretilmez: tekrar sipariş veren müşteri orijinal
// siparişindeki her satırı görmek zorundadır.
func Reconcile(lines []OrderLineSnapshot, live []ResolvedProduct) Result {
	byID := make(map[uint]ResolvedProduct, len(live))
	for _, rp := range live {
		byID[rp.ProductID] = rp
	}

	res := Result{
		Available:   []AvailableLine{},
		Unavailable: []FrozenLine{},
	}

	for _, line := range lines {
		idx := variantIndex(line)

		rp, found := lookup(byID, line.ProductID)
		if !found {
			res.freeze(line)
			continue
		}

		// Ürün katalogda ama artık sipariş edilemiyorsa ya da geri kazanılan
		// variant'ın güncel fiyatı yoksa (ör. porsiyon artık fiyatlanmamış)
		// satır dondurulur; sessizce düşürülmez.
		price, priced := rp.Resolution.VariantPrice(idx)
		if !priced || !rp.Resolution.CanOrder {
			res.freeze(line)
			continue
		}

		res.Available = append(res.Available, AvailableLine{
			ProductID:    rp.ProductID,
			Name:         pricing.DisplayName(rp.Name, rp.Packaging, idx),
			VariantIndex: idx,
			Quantity:     line.Quantity,
			Price:        price,
		})
		res.AvailableCount++
	}

	return res
}

func lookup(byID map[uint]ResolvedProduct, id *uint) (ResolvedProduct, bool) {
	if id == nil {
		return ResolvedProduct{}, false
	}
	rp, ok := byID[*id]
	return rp, ok
}

func (r *Result) freeze(line OrderLineSnapshot) {
	r.Unavailable = append(r.Unavailable, FrozenLine{
		Name:     line.Name,
		Quantity: line.Quantity,
		Price:    line.Price,
	})
	r.UnavailableCount++
}
