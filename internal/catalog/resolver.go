package catalog

import (
	"gorm.io/gorm"

	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
	"storefront-backend/internal/pricing"
	"storefront-backend/internal/reorder"
)

// Piece variant sırası variant indeksidir; preload her zaman pozisyona göre
// sıralı gelmek zorundadır.
func orderedPieceVariants(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}

// ResolvedItem: bir katalog üyesinin motor çıktısıyla birlikte tam hali.
// Beş farklı ekranın kendi kopyasını tuttuğu hesap artık yalnız burada yapılır;
// her HTTP yüzeyi bu paketin ince bir çağıranıdır.
type ResolvedItem struct {
	Product        models.Product
	CatalogProduct models.CatalogProduct
	Resolution     pricing.Resolution
}

// resolveItems: üyelik kayıtlarını motor çıktısına eşler. Ürünü artık var
// olmayan (preload'u boş dönen) üyelik atlanır; sıfır değerli ürün hayalet
// satır olarak vitrine sızamaz.
func resolveItems(members []models.CatalogProduct) []ResolvedItem {
	items := make([]ResolvedItem, 0, len(members))
	for _, m := range members {
		if m.Product.ID == 0 {
			continue
		}
		items = append(items, ResolvedItem{
			Product:        m.Product,
			CatalogProduct: m,
			Resolution:     pricing.ResolveForCatalog(m.Product.PricingInput(), m.Override()),
		})
	}
	return items
}

// ResolveCatalog: kataloğun tüm üyelerini yükleyip her birini katalog
// bağlamında çözümler. Görünürlük filtrelemez; gizli ürünleri düşürmek
// çağıranın işidir (admin önizlemesi hepsini ister).
func ResolveCatalog(catalogID uint) ([]ResolvedItem, error) {
	var members []models.CatalogProduct
	if err := database.DB.
		Preload("Product").
		Preload("Product.PieceVariants", orderedPieceVariants).
		Where("catalog_id = ?", catalogID).
		Order("id asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return resolveItems(members), nil
}

// ResolveCatalogProduct: tek üye için çözümleme; sepete ekleme fiyat
// snapshot'ı buradan alır.
func ResolveCatalogProduct(catalogID, productID uint) (*ResolvedItem, error) {
	var member models.CatalogProduct
	if err := database.DB.
		Preload("Product").
		Preload("Product.PieceVariants", orderedPieceVariants).
		Where("catalog_id = ? AND product_id = ?", catalogID, productID).
		First(&member).Error; err != nil {
		return nil, err
	}
	if member.Product.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	item := ResolvedItem{
		Product:        member.Product,
		CatalogProduct: member,
		Resolution:     pricing.ResolveForCatalog(member.Product.PricingInput(), member.Override()),
	}
	return &item, nil
}

// LiveProducts: reconciler'ın beklediği şekle eşler. Yalnız görünür üyeler
// dahildir; gizli ürün tekrar siparişte "unavailable" olarak donar.
func LiveProducts(items []ResolvedItem) []reorder.ResolvedProduct {
	live := make([]reorder.ResolvedProduct, 0, len(items))
	for _, it := range items {
		if !it.Resolution.Visible {
			continue
		}
		live = append(live, reorder.ResolvedProduct{
			ProductID:  it.Product.ID,
			Name:       it.Product.Name,
			Packaging:  it.Product.PricingInput().Packaging,
			Resolution: it.Resolution,
		})
	}
	return live
}
