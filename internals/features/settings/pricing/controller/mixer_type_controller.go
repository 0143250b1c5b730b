package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/pricing/dto"
	"labsuite_backend/internals/features/settings/pricing/service"
	helper "labsuite_backend/internals/helpers"
)

type MixerTypeController struct {
	Svc *service.MixerTypeService
	Log *zap.Logger
}

func NewMixerTypeController(db *gorm.DB, log *zap.Logger) *MixerTypeController {
	return &MixerTypeController{Svc: service.NewMixerTypeService(db, log), Log: log}
}

func (ctl *MixerTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateMixerTypeRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonCreated(c, dto.FromMixerType(*rec))
}

func (ctl *MixerTypeController) List(c *fiber.Ctx) error {
	rows, err := ctl.Svc.List(c.UserContext(), c.QueryBool("includeInactive", false))
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromMixerTypes(rows))
}

func (ctl *MixerTypeController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	rec, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromMixerType(*rec))
}

func (ctl *MixerTypeController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.PatchMixerTypeRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromMixerType(*rec))
}

func (ctl *MixerTypeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonDeleted(c, "Mixer type deleted successfully", "تم حذف نوع الخلاطة بنجاح")
}
