package order

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/catalog"
	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
	"storefront-backend/internal/reorder"
)

type ItemResponse struct {
	ProductID    *uint           `json:"product_id"`
	Name         string          `json:"name"`
	VariantIndex *int            `json:"variant_index"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID        uint            `json:"id"`
	Number    string          `json:"number"`
	CatalogID uint            `json:"catalog_id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt string          `json:"created_at"`
	Items     []ItemResponse  `json:"items"`
}

type ReorderLineResponse struct {
	ProductID    uint            `json:"product_id"`
	Name         string          `json:"name"`
	VariantIndex int             `json:"variant_index"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

type FrozenLineResponse struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type ReorderResponse struct {
	Available        []ReorderLineResponse `json:"available"`
	Unavailable      []FrozenLineResponse  `json:"unavailable"`
	AvailableCount   int                   `json:"available_count"`
	UnavailableCount int                   `json:"unavailable_count"`
}

func storeBySlug(c *fiber.Ctx) (*models.Store, error) {
	var store models.Store
	if err := database.DB.First(&store, "slug = ?", c.Params("slug")).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
	}
	return &store, nil
}

func orderResponse(o models.Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemResponse{
			ProductID:    it.ProductID,
			Name:         it.Name,
			VariantIndex: it.VariantIndex,
			Quantity:     it.Quantity,
			Price:        it.Price,
		})
	}
	return OrderResponse{
		ID:        o.ID,
		Number:    o.Number,
		CatalogID: o.CatalogID,
		Total:     o.Total,
		CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:     items,
	}
}

// POST /api/storefront/:slug/checkout (customer)
// Sepet sipariş snapshot'ına dönüşür: satır adı variant ekiyle, variant
// indeksi yapısal alanda, fiyat sepete ekleme anındaki kopya. Sepet boşaltılır.
func CheckoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		var cart models.Cart
		if err := database.DB.
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
			Preload("Items.Product").
			Preload("Items.Product.PieceVariants", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
			Where("user_id = ? AND store_id = ?", userID, store.ID).
			First(&cart).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sepet boş")
		}
		if len(cart.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Sepet boş")
		}

		order := models.Order{
			Number:    uuid.New().String(),
			UserID:    userID,
			StoreID:   store.ID,
			CatalogID: cart.CatalogID,
			Total:     decimal.Zero,
		}

		for _, item := range cart.Items {
			productID := item.ProductID
			variantIndex := item.VariantIndex
			order.Items = append(order.Items, models.OrderItem{
				ProductID:    &productID,
				Name:         item.Product.VariantDisplayName(item.VariantIndex),
				VariantIndex: &variantIndex,
				Quantity:     item.Quantity,
				Price:        item.PriceAtAdd,
			})
			order.Total = order.Total.Add(item.PriceAtAdd.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			// Checkout sonrası sepet komple boşaltılır
			return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Sipariş oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(orderResponse(order))
	}
}

// GET /api/storefront/:slug/orders (customer)
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		var orders []models.Order
		if err := database.DB.
			Preload("Items").
			Where("user_id = ? AND store_id = ?", userID, store.ID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Siparişler listelenemedi")
		}

		res := make([]OrderResponse, 0, len(orders))
		for _, o := range orders {
			res = append(res, orderResponse(o))
		}
		return c.JSON(res)
	}
}

// GET /api/storefront/:slug/orders/:id (customer)
func GetOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		var o models.Order
		if err := database.DB.
			Preload("Items").
			First(&o, "id = ? AND user_id = ? AND store_id = ?", c.Params("id"), userID, store.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		return c.JSON(orderResponse(o))
	}
}

// POST /api/storefront/:slug/orders/:id/reorder (customer)
// Tarihsel siparişi güncel kataloğa karşı uzlaştırır: hâlâ satılabilen
// satırlar güncel fiyatla, satılamayanlar tarihsel fiyat/adla dondurulmuş
// olarak döner. Hiçbir satır kaybolmaz.
func ReorderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		store, err := storeBySlug(c)
		if err != nil {
			return err
		}

		var o models.Order
		if err := database.DB.
			Preload("Items").
			First(&o, "id = ? AND user_id = ? AND store_id = ?", c.Params("id"), userID, store.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Sipariş bulunamadı")
		}

		lines := make([]reorder.OrderLineSnapshot, 0, len(o.Items))
		for _, it := range o.Items {
			lines = append(lines, reorder.OrderLineSnapshot{
				ProductID:    it.ProductID,
				Name:         it.Name,
				VariantIndex: it.VariantIndex,
				Quantity:     it.Quantity,
				Price:        it.Price,
			})
		}

		// Katalog silinmiş olabilir; o durumda canlı küme boş kalır ve tüm
		// satırlar dondurulur.
		var live []reorder.ResolvedProduct
		if items, err := catalog.ResolveCatalog(o.CatalogID); err == nil {
			live = catalog.LiveProducts(items)
		}

		result := reorder.Reconcile(lines, live)

		res := ReorderResponse{
			Available:        make([]ReorderLineResponse, 0, len(result.Available)),
			Unavailable:      make([]FrozenLineResponse, 0, len(result.Unavailable)),
			AvailableCount:   result.AvailableCount,
			UnavailableCount: result.UnavailableCount,
		}
		for _, line := range result.Available {
			res.Available = append(res.Available, ReorderLineResponse{
				ProductID:    line.ProductID,
				Name:         line.Name,
				VariantIndex: line.VariantIndex,
				Quantity:     line.Quantity,
				Price:        line.Price,
			})
		}
		for _, line := range result.Unavailable {
			res.Unavailable = append(res.Unavailable, FrozenLineResponse{
				Name:     line.Name,
				Quantity: line.Quantity,
				Price:    line.Price,
			})
		}

		return c.JSON(res)
	}
}
