package storefront

import (
	"fmt"
	"sort"

	"storefront-backend/internal/catalog"
	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
	"storefront-backend/internal/pricing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type StoreResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type CatalogResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// VariantView: vitrin butonu. Fiyat hem ham hem biçimli döner; ham değer
// sepete ekleme isteğinin doğrulamasında kullanılır.
type VariantView struct {
	Index          int             `json:"index"`
	Label          string          `json:"label"`
	Price          decimal.Decimal `json:"price"`
	FormattedPrice string          `json:"formatted_price"`
}

type ProductView struct {
	ProductID uint           `json:"product_id"`
	Name      string         `json:"name"`
	Unit      string         `json:"unit"`
	Status    pricing.Status `json:"status"`
	CanOrder  bool           `json:"can_order"`
	// Variants boşsa ürün tek fiyatla (Full=0) satılır.
	Variants       []VariantView   `json:"variants"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	FormattedPrice string          `json:"formatted_price"`
}

func storeBySlug(c *fiber.Ctx) (*models.Store, error) {
	slug := c.Params("slug")
	var store models.Store
	if err := database.DB.First(&store, "slug = ?", slug).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
	}
	return &store, nil
}

func variantLabel(p models.Product, index int) string {
	// Piece ürünlerin etiketi tanımlı variant'tan gelir; head ürünler sabit
	// kesim sözlüğünü kullanır.
	if p.PackagingType == string(pricing.PackagingPiece) {
		for _, pv := range p.PieceVariants {
			if pv.Position == index {
				return pricing.PieceLabel(pricing.PieceVariantKind(pv.Kind))
			}
		}
		return ""
	}
	return pricing.VariantLabel(index)
}

func productView(it catalog.ResolvedItem, suffix string) ProductView {
	view := ProductView{
		ProductID:      it.Product.ID,
		Name:           it.Product.Name,
		Unit:           it.Product.Unit,
		Status:         it.Resolution.Status,
		CanOrder:       it.Resolution.CanOrder,
		Variants:       []VariantView{},
		UnitPrice:      it.Resolution.UnitPrice,
		FormattedPrice: pricing.FormatPrice(it.Resolution.UnitPrice, suffix),
	}

	// Harita iterasyonu sırasız; butonlar indeks sırasıyla dizilir.
	indexes := make([]int, 0, len(it.Resolution.VariantPrices))
	for idx := range it.Resolution.VariantPrices {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	for _, idx := range indexes {
		price := it.Resolution.VariantPrices[idx]
		view.Variants = append(view.Variants, VariantView{
			Index:          idx,
			Label:          variantLabel(it.Product, idx),
			Price:          price,
			FormattedPrice: pricing.FormatPrice(price, suffix),
		})
	}
	return view
}

// GET /api/storefront/:slug — mağaza bilgisi (public)
func GetStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}
		return c.JSON(StoreResponse{
			ID:          store.ID,
			Name:        store.Name,
			Slug:        store.Slug,
			Description: store.Description,
		})
	}
}

// GET /api/storefront/:slug/catalogs (public)
func ListCatalogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		var catalogs []models.Catalog
		if err := database.DB.Where("store_id = ?", store.ID).Order("name asc").Find(&catalogs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kataloglar listelenemedi")
		}

		res := make([]CatalogResponse, 0, len(catalogs))
		for _, cat := range catalogs {
			res = append(res, CatalogResponse{ID: cat.ID, Name: cat.Name})
		}
		return c.JSON(res)
	}
}

// GET /api/storefront/:slug/catalogs/:id/products/:productId (public)
// Tek ürün görünümü; gizli ürün vitrinde yokmuş gibi 404 döner.
func GetProductHandler(defaultSuffix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		var cat models.Catalog
		if err := database.DB.First(&cat, "id = ? AND store_id = ?", c.Params("id"), store.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Katalog bulunamadı")
		}

		var productID uint
		if _, err := fmt.Sscan(c.Params("productId"), &productID); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		item, err := catalog.ResolveCatalogProduct(cat.ID, productID)
		if err != nil || !item.Resolution.Visible {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		suffix := catalog.CurrencySuffix(store, defaultSuffix)
		return c.JSON(productView(*item, suffix))
	}
}

// GET /api/storefront/:slug/catalogs/:id/products (public)
// Yalnız görünür ürünler döner; hidden vitrinden tamamen düşer.
func ListProductsHandler(defaultSuffix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		var cat models.Catalog
		if err := database.DB.First(&cat, "id = ? AND store_id = ?", c.Params("id"), store.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Katalog bulunamadı")
		}

		items, err := catalog.ResolveCatalog(cat.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Katalog çözümlenemedi")
		}

		suffix := catalog.CurrencySuffix(store, defaultSuffix)

		res := make([]ProductView, 0, len(items))
		for _, it := range items {
			if !it.Resolution.Visible {
				continue
			}
			res = append(res, productView(it, suffix))
		}
		return c.JSON(res)
	}
}
