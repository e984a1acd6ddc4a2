package inventory

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

type PieceVariantPayload struct {
	Kind     string `json:"kind"` // box | single
	Quantity int    `json:"quantity"`
}

type ProductResponse struct {
	ID                 uint                  `json:"id"`
	Name               string                `json:"name"`
	Unit               string                `json:"unit"`
	BuyPrice           *decimal.Decimal      `json:"buy_price"`
	BasePrice          decimal.Decimal       `json:"base_price"`
	MarkupKind         *string               `json:"markup_kind"`
	MarkupAmount       *decimal.Decimal      `json:"markup_amount"`
	PackagingType      string                `json:"packaging_type"`
	UnitWeight         *decimal.Decimal      `json:"unit_weight"`
	PortionWeight      *decimal.Decimal      `json:"portion_weight"`
	CustomFullPrice    *decimal.Decimal      `json:"custom_full_price"`
	CustomHalfPrice    *decimal.Decimal      `json:"custom_half_price"`
	CustomQuarterPrice *decimal.Decimal      `json:"custom_quarter_price"`
	CustomPortionPrice *decimal.Decimal      `json:"custom_portion_price"`
	Quantity           int                   `json:"quantity"`
	IsActive           bool                  `json:"is_active"`
	PieceVariants      []PieceVariantPayload `json:"piece_variants"`
}

type CreateProductRequest struct {
	Name               string                `json:"name"`
	Unit               string                `json:"unit"`
	BuyPrice           *decimal.Decimal      `json:"buy_price"`
	BasePrice          decimal.Decimal       `json:"base_price"`
	MarkupKind         *string               `json:"markup_kind"`
	MarkupAmount       *decimal.Decimal      `json:"markup_amount"`
	PackagingType      string                `json:"packaging_type"`
	UnitWeight         *decimal.Decimal      `json:"unit_weight"`
	PortionWeight      *decimal.Decimal      `json:"portion_weight"`
	CustomFullPrice    *decimal.Decimal      `json:"custom_full_price"`
	CustomHalfPrice    *decimal.Decimal      `json:"custom_half_price"`
	CustomQuarterPrice *decimal.Decimal      `json:"custom_quarter_price"`
	CustomPortionPrice *decimal.Decimal      `json:"custom_portion_price"`
	Quantity           int                   `json:"quantity"`
	IsActive           *bool                 `json:"is_active"`
	PieceVariants      []PieceVariantPayload `json:"piece_variants"`
}

type UpdateProductRequest struct {
	Name               *string               `json:"name"`
	Unit               *string               `json:"unit"`
	BuyPrice           *decimal.Decimal      `json:"buy_price"`
	BasePrice          *decimal.Decimal      `json:"base_price"`
	MarkupKind         *string               `json:"markup_kind"`
	MarkupAmount       *decimal.Decimal      `json:"markup_amount"`
	PackagingType      *string               `json:"packaging_type"`
	UnitWeight         *decimal.Decimal      `json:"unit_weight"`
	PortionWeight      *decimal.Decimal      `json:"portion_weight"`
	CustomFullPrice    *decimal.Decimal      `json:"custom_full_price"`
	CustomHalfPrice    *decimal.Decimal      `json:"custom_half_price"`
	CustomQuarterPrice *decimal.Decimal      `json:"custom_quarter_price"`
	CustomPortionPrice *decimal.Decimal      `json:"custom_portion_price"`
	Quantity           *int                  `json:"quantity"`
	IsActive           *bool                 `json:"is_active"`
	PieceVariants      []PieceVariantPayload `json:"piece_variants"` // nil = dokunma, boş = hepsini sil
}

func productResponse(p models.Product) ProductResponse {
	pieces := make([]PieceVariantPayload, 0, len(p.PieceVariants))
	for _, pv := range p.PieceVariants {
		pieces = append(pieces, PieceVariantPayload{Kind: pv.Kind, Quantity: pv.Quantity})
	}
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Unit:               p.Unit,
		BuyPrice:           p.BuyPrice,
		BasePrice:          p.BasePrice,
		MarkupKind:         p.MarkupKind,
		MarkupAmount:       p.MarkupAmount,
		PackagingType:      p.PackagingType,
		UnitWeight:         p.UnitWeight,
		PortionWeight:      p.PortionWeight,
		CustomFullPrice:    p.CustomFullPrice,
		CustomHalfPrice:    p.CustomHalfPrice,
		CustomQuarterPrice: p.CustomQuarterPrice,
		CustomPortionPrice: p.CustomPortionPrice,
		Quantity:           p.Quantity,
		IsActive:           p.IsActive,
		PieceVariants:      pieces,
	}
}

func validPackagingType(t string) bool {
	switch pricing.PackagingType(t) {
	case pricing.PackagingHead, pricing.PackagingPiece, pricing.PackagingPlain:
		return true
	}
	return false
}

func validMarkupKind(k string) bool {
	switch pricing.MarkupKind(k) {
	case pricing.MarkupPercent, pricing.MarkupFixed:
		return true
	}
	return false
}

func validPieceKind(k string) bool {
	switch pricing.PieceVariantKind(k) {
	case pricing.PieceBox, pricing.PieceSingle:
		return true
	}
	return false
}

// GET /api/store/products (store admin, kendi mağazası)
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.
			Preload("PieceVariants", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
			Where("store_id = ?", storeID).
			Order("name asc").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, productResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/store/products (store admin)
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Unit = strings.TrimSpace(body.Unit)

		if body.Name == "" || body.Unit == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name ve unit zorunlu")
		}
		if body.PackagingType == "" {
			body.PackagingType = string(pricing.PackagingPlain)
		}
		if !validPackagingType(body.PackagingType) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz paketleme tipi")
		}
		if body.MarkupKind != nil && !validMarkupKind(*body.MarkupKind) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kâr kuralı tipi")
		}
		for _, pv := range body.PieceVariants {
			if !validPieceKind(pv.Kind) || pv.Quantity < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz piece variant")
			}
		}

		isActive := true
		if body.IsActive != nil {
			isActive = *body.IsActive
		}

		p := models.Product{
			StoreID:            storeID,
			Name:               body.Name,
			Unit:               body.Unit,
			BuyPrice:           body.BuyPrice,
			BasePrice:          body.BasePrice,
			MarkupKind:         body.MarkupKind,
			MarkupAmount:       body.MarkupAmount,
			PackagingType:      body.PackagingType,
			UnitWeight:         body.UnitWeight,
			PortionWeight:      body.PortionWeight,
			CustomFullPrice:    body.CustomFullPrice,
			CustomHalfPrice:    body.CustomHalfPrice,
			CustomQuarterPrice: body.CustomQuarterPrice,
			CustomPortionPrice: body.CustomPortionPrice,
			Quantity:           body.Quantity,
			IsActive:           isActive,
		}
		for i, pv := range body.PieceVariants {
			p.PieceVariants = append(p.PieceVariants, models.ProductPieceVariant{
				Kind:     pv.Kind,
				Quantity: pv.Quantity,
				Position: i, // tanım sırası variant indeksidir
			})
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		// Audit yazılamasa da mutasyon geri alınmaz
		_ = audit.LogMutation(&storeID, userID, "product", p.ID, models.AuditActionCreate, "Ürün oluşturuldu: "+p.Name, nil, p)

		return c.Status(fiber.StatusCreated).JSON(productResponse(p))
	}
}

// PUT /api/store/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var p models.Product
		if err := database.DB.
			Preload("PieceVariants").
			First(&p, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}
		before := p

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			p.Name = name
		}
		if body.Unit != nil {
			unit := strings.TrimSpace(*body.Unit)
			if unit == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Unit boş olamaz")
			}
			p.Unit = unit
		}
		if body.PackagingType != nil {
			if !validPackagingType(*body.PackagingType) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz paketleme tipi")
			}
			p.PackagingType = *body.PackagingType
		}
		if body.MarkupKind != nil {
			if !validMarkupKind(*body.MarkupKind) {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kâr kuralı tipi")
			}
			p.MarkupKind = body.MarkupKind
		}
		if body.BuyPrice != nil {
			p.BuyPrice = body.BuyPrice
		}
		if body.BasePrice != nil {
			p.BasePrice = *body.BasePrice
		}
		if body.MarkupAmount != nil {
			p.MarkupAmount = body.MarkupAmount
		}
		if body.UnitWeight != nil {
			p.UnitWeight = body.UnitWeight
		}
		if body.PortionWeight != nil {
			p.PortionWeight = body.PortionWeight
		}
		if body.CustomFullPrice != nil {
			p.CustomFullPrice = body.CustomFullPrice
		}
		if body.CustomHalfPrice != nil {
			p.CustomHalfPrice = body.CustomHalfPrice
		}
		if body.CustomQuarterPrice != nil {
			p.CustomQuarterPrice = body.CustomQuarterPrice
		}
		if body.CustomPortionPrice != nil {
			p.CustomPortionPrice = body.CustomPortionPrice
		}
		if body.Quantity != nil {
			p.Quantity = *body.Quantity
		}
		if body.IsActive != nil {
			p.IsActive = *body.IsActive
		}

		// Piece variant listesi komple değiştirilir; pozisyonlar yeniden
		// atanmaz, gönderim sırası korunur. Eski indekslere referans veren
		// sepet satırları olduğundan sıralama değişikliği bilinçli bir karardır.
		if body.PieceVariants != nil {
			for _, pv := range body.PieceVariants {
				if !validPieceKind(pv.Kind) || pv.Quantity < 1 {
					return fiber.NewError(fiber.StatusBadRequest, "Geçersiz piece variant")
				}
			}
			if err := database.DB.Where("product_id = ?", p.ID).Delete(&models.ProductPieceVariant{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Piece variant'lar güncellenemedi")
			}
			p.PieceVariants = nil
			for i, pv := range body.PieceVariants {
				p.PieceVariants = append(p.PieceVariants, models.ProductPieceVariant{
					ProductID: p.ID,
					Kind:      pv.Kind,
					Quantity:  pv.Quantity,
					Position:  i,
				})
			}
		}

		if err := database.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		_ = audit.LogMutation(&storeID, userID, "product", p.ID, models.AuditActionUpdate, "Ürün güncellendi: "+p.Name, before, p)

		return c.JSON(productResponse(p))
	}
}

// deleteProduct: ürünle birlikte katalog üyelikleri, sepet satırları ve piece
// variant'ları da gider; çözülmüş katalogda hayalet satır, sepette adsız satır
// kalmaz. Sipariş satırları silinmez: referansları koparılır ve tarihsel
// fiyat/adla dondurulmuş kayıt olarak kalırlar.
func deleteProduct(tx *gorm.DB, p *models.Product) error {
	if err := tx.Where("product_id = ?", p.ID).Delete(&models.CatalogProduct{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", p.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", p.ID).Update("product_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id = ?", p.ID).Delete(&models.ProductPieceVariant{}).Error; err != nil {
		return err
	}
	return tx.Delete(p).Error
}

// DELETE /api/store/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID, err := auth.CurrentStoreID(c)
		if err != nil {
			return err
		}
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		if err := database.DB.Transaction(func(tx *gorm.DB) error {
			return deleteProduct(tx, &p)
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		_ = audit.LogMutation(&storeID, userID, "product", p.ID, models.AuditActionDelete, "Ürün silindi: "+p.Name, p, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
