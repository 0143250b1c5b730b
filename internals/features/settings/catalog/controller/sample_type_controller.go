package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/catalog/dto"
	"labsuite_backend/internals/features/settings/catalog/service"
	helper "labsuite_backend/internals/helpers"
)

type SampleTypeController struct {
	Svc *service.SampleTypeService
	Log *zap.Logger
}

func NewSampleTypeController(db *gorm.DB, log *zap.Logger) *SampleTypeController {
	return &SampleTypeController{Svc: service.NewSampleTypeService(db, log), Log: log}
}

func (ctl *SampleTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateSampleTypeRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonCreated(c, dto.FromSampleType(*rec))
}

// GET /settings/sample-types?includeInactive=&testTypeId=
func (ctl *SampleTypeController) List(c *fiber.Ctx) error {
	f := service.SampleTypeFilter{IncludeInactive: c.QueryBool("includeInactive", false)}
	if raw := strings.TrimSpace(c.Query("testTypeId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "testTypeId must be a UUID", "يجب أن يكون testTypeId معرّفاً صالحاً")
		}
		f.TestTypeID = &id
	}
	rows, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromSampleTypes(rows))
}

func (ctl *SampleTypeController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	rec, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromSampleType(*rec))
}

func (ctl *SampleTypeController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.PatchSampleTypeRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromSampleType(*rec))
}

func (ctl *SampleTypeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonDeleted(c, "Sample type deleted successfully", "تم حذف نوع العينة بنجاح")
}
