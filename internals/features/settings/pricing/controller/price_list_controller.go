package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/pricing/dto"
	"labsuite_backend/internals/features/settings/pricing/service"
	helper "labsuite_backend/internals/helpers"
)

type PriceListController struct {
	Svc *service.PriceListService
	Log *zap.Logger
}

func NewPriceListController(db *gorm.DB, log *zap.Logger) *PriceListController {
	return &PriceListController{Svc: service.NewPriceListService(db, log), Log: log}
}

// POST /settings/price-lists (optional nested items)
func (ctl *PriceListController) Create(c *fiber.Ctx) error {
	var req dto.CreatePriceListRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonCreated(c, dto.FromPriceList(*rec))
}

// GET /settings/price-lists?includeInactive=&category=
func (ctl *PriceListController) List(c *fiber.Ctx) error {
	f := service.PriceListFilter{IncludeInactive: c.QueryBool("includeInactive", false)}
	if cat := c.Query("category"); cat != "" {
		f.Category = &cat
	}
	rows, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromPriceLists(rows))
}

func (ctl *PriceListController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	rec, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromPriceList(*rec))
}

func (ctl *PriceListController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.PatchPriceListRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromPriceList(*rec))
}

func (ctl *PriceListController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonDeleted(c, "Price list deleted successfully", "تم حذف قائمة الأسعار بنجاح")
}

// POST /settings/price-lists/:id/items
func (ctl *PriceListController) AddItem(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.CreatePriceListItemRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	it, err := ctl.Svc.AddItem(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonCreated(c, dto.FromPriceListItem(*it))
}

// PATCH /settings/price-lists/:id/items/:itemId
func (ctl *PriceListController) PatchItem(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	itemID, err := helper.ParseUUIDParam(c, "itemId")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.PatchPriceListItemRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	it, err := ctl.Svc.UpdateItem(c.UserContext(), id, itemID, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromPriceListItem(*it))
}

func (ctl *PriceListController) DeleteItem(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	itemID, err := helper.ParseUUIDParam(c, "itemId")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	if err := ctl.Svc.DeleteItem(c.UserContext(), id, itemID); err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonDeleted(c, "Price list item deleted successfully", "تم حذف بند قائمة الأسعار بنجاح")
}
