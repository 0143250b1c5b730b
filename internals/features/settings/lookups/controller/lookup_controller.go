package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/lookups/dto"
	"labsuite_backend/internals/features/settings/lookups/service"
	helper "labsuite_backend/internals/helpers"
)

type LookupController struct {
	Svc *service.LookupService
	Log *zap.Logger
}

func NewLookupController(db *gorm.DB, log *zap.Logger) *LookupController {
	return &LookupController{Svc: service.NewLookupService(db, log), Log: log}
}

/* =========================
   Categories
   ========================= */

func (ctl *LookupController) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.CreateCategory(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonCreated(c, dto.FromLookupCategory(*rec))
}

func (ctl *LookupController) ListCategories(c *fiber.Ctx) error {
	rows, err := ctl.Svc.ListCategories(c.UserContext(), c.QueryBool("includeInactive", false))
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromLookupCategories(rows))
}

func (ctl *LookupController) GetCategory(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	rec, err := ctl.Svc.GetCategory(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromLookupCategory(*rec))
}

// GET /settings/lookups/by-code/:code
func (ctl *LookupController) GetCategoryByCode(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))
	if code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "code is required", "الرمز مطلوب")
	}
	rec, err := ctl.Svc.GetCategoryByCode(c.UserContext(), code)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromLookupCategory(*rec))
}

func (ctl *LookupController) PatchCategory(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.PatchCategoryRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.UpdateCategory(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromLookupCategory(*rec))
}

func (ctl *LookupController) DeleteCategory(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	if err := ctl.Svc.DeleteCategory(c.UserContext(), id); err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonDeleted(c, "Lookup category deleted successfully", "تم حذف فئة القائمة بنجاح")
}

/* =========================
   Items
   ========================= */

// POST /settings/lookups/categories/:id/items
func (ctl *LookupController) CreateItem(c *fiber.Ctx) error {
	categoryID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.CreateItemRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.CreateItem(c.UserContext(), categoryID, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonCreated(c, dto.FromLookupItem(*rec))
}

func (ctl *LookupController) PatchItem(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "itemId")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.PatchItemRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.UpdateItem(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromLookupItem(*rec))
}

func (ctl *LookupController) DeleteItem(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "itemId")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	if err := ctl.Svc.DeleteItem(c.UserContext(), id); err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonDeleted(c, "Lookup item deleted successfully", "تم حذف عنصر القائمة بنجاح")
}
