package admin

import (
	"strings"

	"storefront-backend/internal/database"
	"storefront-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type StoreResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	Phone          string `json:"phone"`
	CurrencySuffix string `json:"currency_suffix"`
	CreatedAt      string `json:"created_at"`
}

type CreateStoreRequest struct {
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Description    string  `json:"description"`
	Phone          *string `json:"phone"` // Opsiyonel
	CurrencySuffix *string `json:"currency_suffix"`
}

type UpdateStoreRequest struct {
	Name           *string `json:"name"`
	Slug           *string `json:"slug"`
	Description    *string `json:"description"`
	Phone          *string `json:"phone"` // Opsiyonel
	CurrencySuffix *string `json:"currency_suffix"`
}

type CreateStoreAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StoreAdminResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	StoreID   *uint  `json:"store_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func storeResponse(s models.Store) StoreResponse {
	return StoreResponse{
		ID:             s.ID,
		Name:           s.Name,
		Slug:           s.Slug,
		Description:    s.Description,
		Phone:          s.Phone,
		CurrencySuffix: s.CurrencySuffix,
		CreatedAt:      s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ----------------------------------------
// MAĞAZA CRUD
// ----------------------------------------

func CreateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Slug = strings.ToLower(strings.TrimSpace(body.Slug))
		if body.Name == "" || body.Slug == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Mağaza adı ve slug boş olamaz")
		}

		store := models.Store{
			Name:        body.Name,
			Slug:        body.Slug,
			Description: body.Description,
		}
		if body.Phone != nil {
			store.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.CurrencySuffix != nil {
			store.CurrencySuffix = strings.TrimSpace(*body.CurrencySuffix)
		}

		if err := database.DB.Create(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(storeResponse(store))
	}
}

func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {

		var stores []models.Store
		if err := database.DB.Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağazalar listelenemedi")
		}

		res := make([]StoreResponse, 0, len(stores))
		for _, s := range stores {
			res = append(res, storeResponse(s))
		}

		return c.JSON(res)
	}
}

func GetStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		return c.JSON(storeResponse(store))
	}
}

func UpdateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		var body UpdateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Mağaza adı boş olamaz")
			}
			store.Name = name
		}

		if body.Slug != nil {
			slug := strings.ToLower(strings.TrimSpace(*body.Slug))
			if slug == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Slug boş olamaz")
			}
			store.Slug = slug
		}

		if body.Description != nil {
			store.Description = *body.Description
		}

		if body.Phone != nil {
			store.Phone = strings.TrimSpace(*body.Phone)
		}

		if body.CurrencySuffix != nil {
			store.CurrencySuffix = strings.TrimSpace(*body.CurrencySuffix)
		}

		if err := database.DB.Save(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza güncellenemedi")
		}

		return c.JSON(storeResponse(store))
	}
}

func DeleteStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {

		id := c.Params("id")

		if err := database.DB.Delete(&models.Store{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ----------------------------------------
// MAĞAZA ADMİNİ OLUŞTURMA
// ----------------------------------------

func CreateStoreAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {

		storeID := c.Params("id")

		// Mağaza kontrolü
		var store models.Store
		if err := database.DB.First(&store, "id = ?", storeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Mağaza bulunamadı")
		}

		var body CreateStoreAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri gönderildi")
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "İsim, email ve şifre zorunlu")
		}

		// Email kontrolü
		var exist models.User
		if err := database.DB.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu email zaten kayıtlı")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleStoreAdmin,
			StoreID:      &store.ID,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mağaza admini oluşturulamadı")
		}

		// NOT: Şifre sadece oluşturma sırasında bir kez döndürülür
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"store_id": user.StoreID,
			"password": body.Password, // Sadece oluşturma sırasında (bir kez)
		})
	}
}

// ----------------------------------------
// MAĞAZA ADMİNLERİNİ LİSTELE
// GET /api/admin/stores/:id/admins
// ----------------------------------------

func ListStoreAdminsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("id")

		var users []models.User
		if err := database.DB.
			Where("store_id = ? AND role = ?", storeID, models.RoleStoreAdmin).
			Order("created_at DESC").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Adminler listelenemedi")
		}

		res := make([]StoreAdminResponse, 0, len(users))
		for _, u := range users {
			res = append(res, StoreAdminResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				Role:      string(u.Role),
				StoreID:   u.StoreID,
				CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
				UpdatedAt: u.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}
