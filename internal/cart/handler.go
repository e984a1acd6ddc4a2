package cart

import (
	"storefront-backend/internal/auth"
	"storefront-backend/internal/catalog"
	"storefront-backend/internal/database"
	"storefront-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AddItemRequest struct {
	CatalogID    uint `json:"catalog_id"`
	ProductID    uint `json:"product_id"`
	VariantIndex int  `json:"variant_index"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"` // 0 = satırı sil
}

type ItemResponse struct {
	ID           uint            `json:"id"`
	ProductID    uint            `json:"product_id"`
	Name         string          `json:"name"`
	VariantIndex int             `json:"variant_index"`
	Quantity     int             `json:"quantity"`
	PriceAtAdd   decimal.Decimal `json:"price_at_add"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	ID        uint            `json:"id"`
	CatalogID uint            `json:"catalog_id"`
	Items     []ItemResponse  `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

func storeBySlug(c *fiber.Ctx) (*models.Store, error) {
	var store models.Store
	if err := database.DB.First(&store, "slug = ?", c.Params("slug")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
	}
	return &store, nil
}

func cartResponse(cart models.Cart) CartResponse {
	res := CartResponse{
		ID:        cart.ID,
		CatalogID: cart.CatalogID,
		Items:     make([]ItemResponse, 0, len(cart.Items)),
		Total:     decimal.Zero,
	}
	for _, item := range cart.Items {
		lineTotal := item.PriceAtAdd.Mul(decimal.NewFromInt(int64(item.Quantity)))
		res.Items = append(res.Items, ItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			Name:         item.Product.VariantDisplayName(item.VariantIndex),
			VariantIndex: item.VariantIndex,
			Quantity:     item.Quantity,
			PriceAtAdd:   item.PriceAtAdd,
			LineTotal:    lineTotal,
		})
		res.Total = res.Total.Add(lineTotal)
	}
	return res
}

func loadCart(userID, storeID uint) (*models.Cart, error) {
	var cart models.Cart
	err := database.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Product").
		Preload("Items.Product.PieceVariants", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GET /api/storefront/:slug/cart (customer)
func GetCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		cart, err := loadCart(userID, store.ID)
		if err != nil {
			// Henüz sepet yoksa boş sepet döner
			return c.JSON(CartResponse{Items: []ItemResponse{}, Total: decimal.Zero})
		}
		return c.JSON(cartResponse(*cart))
	}
}

// POST /api/storefront/:slug/cart/items (customer)
// Fiyat ekleme ANINDA güncel katalog çözümlemesinden alınır ve satıra kopyalanır;
// sepetteyken yeniden hesaplanmaz. Aynı (ürün, variant) satırı varsa miktar artar.
func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		var cat models.Catalog
		if err := database.DB.First(&cat, "id = ? AND store_id = ?", body.CatalogID, store.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Katalog bulunamadı")
		}

		item, err := catalog.ResolveCatalogProduct(cat.ID, body.ProductID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün katalogda bulunamadı")
		}
		if !item.Resolution.Visible || !item.Resolution.CanOrder {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün şu anda sipariş edilemiyor")
		}

		price, ok := item.Resolution.VariantPrice(body.VariantIndex)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz variant")
		}

		// Sepeti bul veya oluştur
		var cart models.Cart
		err = database.DB.Where("user_id = ? AND store_id = ?", userID, store.ID).First(&cart).Error
		if err != nil {
			cart = models.Cart{UserID: userID, StoreID: store.ID, CatalogID: cat.ID}
			if err := database.DB.Create(&cart).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sepet oluşturulamadı")
			}
		}

		// Aynı (ürün, variant) satırı varsa miktarı artır; fiyat snapshot'ı korunur
		var existing models.CartItem
		err = database.DB.
			Where("cart_id = ? AND product_id = ? AND variant_index = ?", cart.ID, body.ProductID, body.VariantIndex).
			First(&existing).Error
		if err == nil {
			existing.Quantity++
			if err := database.DB.Save(&existing).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sepet güncellenemedi")
			}
		} else {
			newItem := models.CartItem{
				CartID:       cart.ID,
				ProductID:    body.ProductID,
				VariantIndex: body.VariantIndex,
				Quantity:     1,
				PriceAtAdd:   price,
			}
			if err := database.DB.Create(&newItem).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Ürün sepete eklenemedi")
			}
		}

		loaded, err := loadCart(userID, store.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sepet yüklenemedi")
		}
		return c.Status(fiber.StatusCreated).JSON(cartResponse(*loaded))
	}
}

// PUT /api/storefront/:slug/cart/items/:itemId (customer)
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		cart, err := loadCart(userID, store.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sepet bulunamadı")
		}

		var item models.CartItem
		if err := database.DB.First(&item, "id = ? AND cart_id = ?", c.Params("itemId"), cart.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sepet satırı bulunamadı")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Miktar negatif olamaz")
		}

		// Miktar sıfıra düşen satır silinir
		if body.Quantity == 0 {
			if err := database.DB.Delete(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sepet satırı silinemedi")
			}
		} else {
			item.Quantity = body.Quantity
			if err := database.DB.Save(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Sepet güncellenemedi")
			}
		}

		loaded, err := loadCart(userID, store.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sepet yüklenemedi")
		}
		return c.JSON(cartResponse(*loaded))
	}
}

// DELETE /api/storefront/:slug/cart/items/:itemId (customer)
func DeleteItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		cart, err := loadCart(userID, store.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sepet bulunamadı")
		}

		if err := database.DB.
			Where("id = ? AND cart_id = ?", c.Params("itemId"), cart.ID).
			Delete(&models.CartItem{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sepet satırı silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/storefront/:slug/cart (customer) — sepeti boşalt
func ClearCartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		cart, err := loadCart(userID, store.ID)
		if err != nil {
			return c.SendStatus(fiber.StatusNoContent)
		}

		if err := database.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sepet boşaltılamadı")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
