package reorder

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

func cheese(id uint) ResolvedProduct {
	pkg := pricing.Packaging{Type: pricing.PackagingHead, UnitWeight: decPtr("35")}
	return ResolvedProduct{
		ProductID: id,
		Name:      "Сыр",
		Packaging: pkg,
		Resolution: pricing.ResolveForCatalog(pricing.Product{
			BasePrice: dec("1890"),
			Packaging: pkg,
			Quantity:  5,
			IsActive:  true,
		}, nil),
	}
}

func candy(id uint) ResolvedProduct {
	pkg := pricing.Packaging{
		Type: pricing.PackagingPiece,
		PieceVariants: []pricing.PieceVariant{
			{Kind: pricing.PieceBox, Quantity: 12},
			{Kind: pricing.PieceSingle, Quantity: 1},
		},
	}
	return ResolvedProduct{
		ProductID: id,
		Name:      "Конфеты",
		Packaging: pkg,
		Resolution: pricing.ResolveForCatalog(pricing.Product{
			BasePrice: dec("85"),
			Packaging: pkg,
			Quantity:  10,
			IsActive:  true,
		}, nil),
	}
}

func TestReconcile_AvailableLineRepriced(t *testing.T) {
	lines := []OrderLineSnapshot{
		{ProductID: uintPtr(7), Name: "Сыр (½)", Quantity: 2, Price: dec("29000")},
	}

	res := Reconcile(lines, []ResolvedProduct{cheese(7)})

	require.Len(t, res.Available, 1)
	require.Empty(t, res.Unavailable)
	assert.Equal(t, 1, res.AvailableCount)
	assert.Equal(t, 0, res.UnavailableCount)

	line := res.Available[0]
	assert.Equal(t, uint(7), line.ProductID)
	assert.Equal(t, pricing.VariantHalf, line.VariantIndex)
	assert.Equal(t, 2, line.Quantity)
	// Tarihsel 29000 değil, güncel katalog fiyatı: 1890 * 17.5 = 33075.
	assert.True(t, line.Price.Equal(dec("33075")), "price: %s", line.Price)
	assert.Equal(t, "Сыр (½)", line.Name)
}

func TestReconcile_PersistedVariantIndexWins(t *testing.T) {
	// Yapısal variant alanı varsa addaki etiket okunmaz; eski kayıt geri
	// düşüşü yalnız alan yokken devreye girer.
	lines := []OrderLineSnapshot{
		{ProductID: uintPtr(7), Name: "Сыр (½)", VariantIndex: intPtr(pricing.VariantQuarter), Quantity: 1, Price: dec("1")},
	}

	res := Reconcile(lines, []ResolvedProduct{cheese(7)})

	require.Len(t, res.Available, 1)
	assert.Equal(t, pricing.VariantQuarter, res.Available[0].VariantIndex)
	assert.True(t, res.Available[0].Price.Equal(dec("16537.5")))
}

func TestReconcile_PieceLineKeepsPieceLabel(t *testing.T) {
	// Piece ürünün satır adı tanımlı variant etiketini taşır; indeks 1 kesim
	// sözlüğündeki "(½)" etiketine asla düşmez.
	lines := []OrderLineSnapshot{
		{ProductID: uintPtr(3), Name: "Конфеты (Штука)", VariantIndex: intPtr(1), Quantity: 2, Price: dec("80")},
	}

	res := Reconcile(lines, []ResolvedProduct{candy(3)})

	require.Len(t, res.Available, 1)
	assert.Equal(t, "Конфеты (Штука)", res.Available[0].Name)
	assert.Equal(t, 1, res.Available[0].VariantIndex)
	assert.True(t, res.Available[0].Price.Equal(dec("85")))
}

func TestReconcile_MissingProductFrozen(t *testing.T) {
	lines := []OrderLineSnapshot{
		{ProductID: uintPtr(99), Name: "Сыр (¼)", Quantity: 1, Price: dec("15000")},
		{ProductID: nil, Name: "Старый товар", Quantity: 3, Price: dec("700")},
	}

	res := Reconcile(lines, []ResolvedProduct{cheese(7)})

	require.Empty(t, res.Available)
	require.Len(t, res.Unavailable, 2)
	assert.Equal(t, 2, res.UnavailableCount)

	// Tarihsel fiyat ve ad olduğu gibi korunur.
	assert.Equal(t, "Сыр (¼)", res.Unavailable[0].Name)
	assert.True(t, res.Unavailable[0].Price.Equal(dec("15000")))
	assert.Equal(t, "Старый товар", res.Unavailable[1].Name)
	assert.Equal(t, 3, res.Unavailable[1].Quantity)
}

func TestReconcile_UnpricedVariantFrozen(t *testing.T) {
	// Ürün katalogda ama porsiyon artık fiyatlanmamış: satır düşürülmez,
	// dondurulur.
	lines := []OrderLineSnapshot{
		{ProductID: uintPtr(7), Name: "Сыр (Порция)", Quantity: 1, Price: dec("450")},
	}

	res := Reconcile(lines, []ResolvedProduct{cheese(7)})

	require.Empty(t, res.Available)
	require.Len(t, res.Unavailable, 1)
	assert.True(t, res.Unavailable[0].Price.Equal(dec("450")))
}

func TestReconcile_NotOrderableFrozen(t *testing.T) {
	rp := cheese(7)
	st := pricing.StatusOutOfStock
	rp.Resolution = pricing.ResolveForCatalog(pricing.Product{
		BasePrice: dec("1890"),
		Packaging: pricing.Packaging{Type: pricing.PackagingHead, UnitWeight: decPtr("35")},
		Quantity:  5,
		IsActive:  true,
	}, &pricing.CatalogOverride{Status: &st})

	lines := []OrderLineSnapshot{
		{ProductID: uintPtr(7), Name: "Сыр", Quantity: 1, Price: dec("60000")},
	}

	res := Reconcile(lines, []ResolvedProduct{rp})

	require.Empty(t, res.Available)
	require.Len(t, res.Unavailable, 1)
}

func TestReconcile_UnrecognizedSuffixDefaultsToFull(t *testing.T) {
	lines := []OrderLineSnapshot{
		{ProductID: uintPtr(7), Name: "Сыр (выдержанный)", Quantity: 1, Price: dec("1")},
	}

	res := Reconcile(lines, []ResolvedProduct{cheese(7)})

	require.Len(t, res.Available, 1)
	assert.Equal(t, pricing.VariantFull, res.Available[0].VariantIndex)
	assert.True(t, res.Available[0].Price.Equal(dec("66150")))
}

func TestReconcile_MixedOrderKeepsEveryLine(t *testing.T) {
	lines := []OrderLineSnapshot{
		{ProductID: uintPtr(7), Name: "Сыр", Quantity: 1, Price: dec("60000")},
		{ProductID: uintPtr(99), Name: "Снятый товар", Quantity: 2, Price: dec("300")},
		{ProductID: uintPtr(7), Name: "Сыр (½)", Quantity: 1, Price: dec("29000")},
	}

	res := Reconcile(lines, []ResolvedProduct{cheese(7)})

	assert.Equal(t, 2, res.AvailableCount)
	assert.Equal(t, 1, res.UnavailableCount)
	assert.Len(t, res.Available, 2)
	assert.Len(t, res.Unavailable, 1)
}

func TestReconcile_EmptyInputs(t *testing.T) {
	res := Reconcile(nil, nil)
	assert.Empty(t, res.Available)
	assert.Empty(t, res.Unavailable)
	assert.Equal(t, 0, res.AvailableCount)
	assert.Equal(t, 0, res.UnavailableCount)
}
