package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/catalog/dto"
	"labsuite_backend/internals/features/settings/catalog/service"
	helper "labsuite_backend/internals/helpers"
)

type StandardController struct {
	Svc *service.StandardService
	Log *zap.Logger
}

func NewStandardController(db *gorm.DB, log *zap.Logger) *StandardController {
	return &StandardController{Svc: service.NewStandardService(db, log), Log: log}
}

func (ctl *StandardController) Create(c *fiber.Ctx) error {
	var req dto.CreateStandardRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonCreated(c, dto.FromStandard(*rec))
}

// GET /settings/standards?includeInactive=&type=ASTM
func (ctl *StandardController) List(c *fiber.Ctx) error {
	f := service.StandardFilter{IncludeInactive: c.QueryBool("includeInactive", false)}
	if t := c.Query("type"); t != "" {
		f.Type = &t
	}
	rows, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromStandards(rows))
}

func (ctl *StandardController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	rec, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromStandard(*rec))
}

func (ctl *StandardController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.PatchStandardRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromStandard(*rec))
}

func (ctl *StandardController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonDeleted(c, "Standard deleted successfully", "تم حذف المعيار بنجاح")
}
