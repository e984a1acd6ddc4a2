package catalog

import (
	"strings"

	"storefront-backend/internal/audit"
	"storefront-backend/internal/auth"
	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
	"storefront-backend/internal/pricing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CatalogResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	ProductCount int64  `json:"product_count"`
	CreatedAt    string `json:"created_at"`
}

type CreateCatalogRequest struct {
	Name string `json:"name"`
}

type UpdateCatalogRequest struct {
	Name *string `json:"name"`
}

type AddProductRequest struct {
	ProductID uint `json:"product_id"`
}

// OverrideRequest: kg başına full/half/quarter, sabit porsiyon fiyatı ve
// durum. Gönderilmeyen (null) alan miras anlamına gelir; alanı temizlemek de
// null göndermektir — bu yüzden upsert her seferinde tam gövde bekler.
type OverrideRequest struct {
	FullPerKg    *decimal.Decimal `json:"full_per_kg"`
	HalfPerKg    *decimal.Decimal `json:"half_per_kg"`
	QuarterPerKg *decimal.Decimal `json:"quarter_per_kg"`
	PortionPrice *decimal.Decimal `json:"portion_price"`
	Status       *string          `json:"status"`
}

type MemberResponse struct {
	ProductID    uint             `json:"product_id"`
	ProductName  string           `json:"product_name"`
	FullPerKg    *decimal.Decimal `json:"full_per_kg"`
	HalfPerKg    *decimal.Decimal `json:"half_per_kg"`
	QuarterPerKg *decimal.Decimal `json:"quarter_per_kg"`
	PortionPrice *decimal.Decimal `json:"portion_price"`
	Status       *string          `json:"status"`
}

// PreviewItem: admin önizlemesi gizli ürünleri de içerir; visible bayrağı
// vitrinde düşürüleceğini gösterir.
type PreviewItem struct {
	ProductID     uint            `json:"product_id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	VariantPrices map[int]string  `json:"variant_prices"` // indeks -> biçimli fiyat
	Status        pricing.Status  `json:"status"`
	Visible       bool            `json:"visible"`
	CanOrder      bool            `json:"can_order"`
}

func catalogForStore(c *fiber.Ctx, storeID uint) (*models.Catalog, error) {
	id := c.Params("id")
	var cat models.Catalog
	if err := database.DB.First(&cat, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Katalog bulunamadı")
	}
	return &cat, nil
}

// POST /api/store/catalogs (store admin)
func CreateCatalogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateCatalogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Katalog adı boş olamaz")
		}

		cat := models.Catalog{StoreID: storeID, Name: body.Name}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Katalog oluşturulamadı")
		}

		_ = audit.LogMutation(&storeID, userID, "catalog", cat.ID, models.AuditActionCreate, "Katalog oluşturuldu: "+cat.Name, nil, cat)

		return c.Status(fiber.StatusCreated).JSON(CatalogResponse{
			ID:        cat.ID,
			Name:      cat.Name,
			CreatedAt: cat.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// GET /api/store/catalogs
func ListCatalogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}

		var catalogs []models.Catalog
		if err := database.DB.Where("store_id = ?", storeID).Order("name asc").Find(&catalogs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kataloglar listelenemedi")
		}

		res := make([]CatalogResponse, 0, len(catalogs))
		for _, cat := range catalogs {
			var count int64
			database.DB.Model(&models.CatalogProduct{}).Where("catalog_id = ?", cat.ID).Count(&count)
			res = append(res, CatalogResponse{
				ID:           cat.ID,
				Name:         cat.Name,
				ProductCount: count,
				CreatedAt:    cat.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}

// PUT /api/store/catalogs/:id
func UpdateCatalogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		cat, err := catalogForStore(c, storeID)
		if err != nil {
			return err
		}

		var body UpdateCatalogRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		before := *cat
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Katalog adı boş olamaz")
			}
			cat.Name = name
		}

		if err := database.DB.Save(cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Katalog güncellenemedi")
		}

		_ = audit.LogMutation(&storeID, userID, "catalog", cat.ID, models.AuditActionUpdate, "Katalog güncellendi: "+cat.Name, before, cat)

		return c.JSON(CatalogResponse{
			ID:        cat.ID,
			Name:      cat.Name,
			CreatedAt: cat.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

// deleteCatalog: katalogla birlikte üyelikleri ve bu kataloğa bağlı sepetler
// de gider; ölü bir kataloğa karşı checkout yapılamaz. Tek transaction içinde
// çalışır.
func deleteCatalog(tx *gorm.DB, cat *models.Catalog) error {
	var cartIDs []uint
	if err := tx.Model(&models.Cart{}).Where("catalog_id = ?", cat.ID).Pluck("id", &cartIDs).Error; err != nil {
		return err
	}
	if len(cartIDs) > 0 {
		if err := tx.Where("cart_id IN ?", cartIDs).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", cartIDs).Delete(&models.Cart{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("catalog_id = ?", cat.ID).Delete(&models.CatalogProduct{}).Error; err != nil {
		return err
	}
	return tx.Delete(cat).Error
}

// DELETE /api/store/catalogs/:id
func DeleteCatalogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		cat, err := catalogForStore(c, storeID)
		if err != nil {
			return err
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			return deleteCatalog(tx, cat)
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Katalog silinemedi")
		}

		_ = audit.LogMutation(&storeID, userID, "catalog", cat.ID, models.AuditActionDelete, "Katalog silindi: "+cat.Name, cat, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ----------------------------------------
// ÜYELİK + OVERRIDE
// ----------------------------------------

// GET /api/store/catalogs/:id/products
func ListMembersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}

		cat, err := catalogForStore(c, storeID)
		if err != nil {
			return err
		}

		var members []models.CatalogProduct
		if err := database.DB.Preload("Product").Where("catalog_id = ?", cat.ID).Find(&members).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Üyeler listelenemedi")
		}

		res := make([]MemberResponse, 0, len(members))
		for _, m := range members {
			res = append(res, MemberResponse{
				ProductID:    m.ProductID,
				ProductName:  m.Product.Name,
				FullPerKg:    m.FullPerKg,
				HalfPerKg:    m.HalfPerKg,
				QuarterPerKg: m.QuarterPerKg,
				PortionPrice: m.PortionPrice,
				Status:       m.Status,
			})
		}
		return c.JSON(res)
	}
}

// POST /api/store/catalogs/:id/products — ürünü kataloğa ekle (override'sız)
func AddProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}

		cat, err := catalogForStore(c, storeID)
		if err != nil {
			return err
		}

		var body AddProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ? AND store_id = ?", body.ProductID, storeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var existing models.CatalogProduct
		if err := database.DB.Where("catalog_id = ? AND product_id = ?", cat.ID, product.ID).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün zaten katalogda")
		}

		member := models.CatalogProduct{CatalogID: cat.ID, ProductID: product.ID}
		if err := database.DB.Create(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün kataloğa eklenemedi")
		}

		return c.SendStatus(fiber.StatusCreated)
	}
}

// DELETE /api/store/catalogs/:id/products/:productId
func RemoveProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}

		cat, err := catalogForStore(c, storeID)
		if err != nil {
			return err
		}

		productID := c.Params("productId")
		if err := database.DB.
			Where("catalog_id = ? AND product_id = ?", cat.ID, productID).
			Delete(&models.CatalogProduct{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün katalogdan çıkarılamadı")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PUT /api/store/catalogs/:id/products/:productId/override
func UpsertOverrideHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		cat, err := catalogForStore(c, storeID)
		if err != nil {
			return err
		}

		productID := c.Params("productId")

		var member models.CatalogProduct
		if err := database.DB.
			Where("catalog_id = ? AND product_id = ?", cat.ID, productID).
			First(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün katalogda değil")
		}
		before := member

		var body OverrideRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Status != nil && !pricing.ValidStatus(pricing.Status(*body.Status)) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz durum")
		}

		member.FullPerKg = body.FullPerKg
		member.HalfPerKg = body.HalfPerKg
		member.QuarterPerKg = body.QuarterPerKg
		member.PortionPrice = body.PortionPrice
		member.Status = body.Status

		if err := database.DB.Save(&member).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Override kaydedilemedi")
		}

		_ = audit.LogMutation(&storeID, userID, "catalog_product", member.ID, models.AuditActionUpdate, "Katalog override güncellendi", before, member)

		return c.JSON(MemberResponse{
			ProductID:    member.ProductID,
			FullPerKg:    member.FullPerKg,
			HalfPerKg:    member.HalfPerKg,
			QuarterPerKg: member.QuarterPerKg,
			PortionPrice: member.PortionPrice,
			Status:       member.Status,
		})
	}
}

// CurrencySuffix: mağaza kendi ekini tanımlamışsa o, yoksa global varsayılan.
func CurrencySuffix(store *models.Store, def string) string {
	if store != nil && store.CurrencySuffix != "" {
		return store.CurrencySuffix
	}
	return def
}

// GET /api/store/catalogs/:id/preview — gizli ürünler dahil çözümlenmiş görünüm
func PreviewHandler(defaultSuffix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}

		cat, err := catalogForStore(c, storeID)
		if err != nil {
			return err
		}

		var store models.Store
		currencySuffix := defaultSuffix
		if err := database.DB.First(&store, storeID).Error; err == nil {
			currencySuffix = CurrencySuffix(&store, defaultSuffix)
		}

		items, err := ResolveCatalog(cat.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Katalog çözümlenemedi")
		}

		res := make([]PreviewItem, 0, len(items))
		for _, it := range items {
			formatted := make(map[int]string, len(it.Resolution.VariantPrices))
			for idx, price := range it.Resolution.VariantPrices {
				formatted[idx] = pricing.FormatPrice(price, currencySuffix)
			}
			res = append(res, PreviewItem{
				ProductID:     it.Product.ID,
				Name:          it.Product.Name,
				Unit:          it.Product.Unit,
				UnitPrice:     it.Resolution.UnitPrice,
				VariantPrices: formatted,
				Status:        it.Resolution.Status,
				Visible:       it.Resolution.Visible,
				CanOrder:      it.Resolution.CanOrder,
			})
		}
		return c.JSON(res)
	}
}
