package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/catalog/dto"
	"labsuite_backend/internals/features/settings/catalog/service"
	helper "labsuite_backend/internals/helpers"
)

type TestTypeController struct {
	Svc *service.TestTypeService
	Log *zap.Logger
}

func NewTestTypeController(db *gorm.DB, log *zap.Logger) *TestTypeController {
	return &TestTypeController{Svc: service.NewTestTypeService(db, log), Log: log}
}

// POST /settings/test-types
func (ctl *TestTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateTestTypeRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonCreated(c, dto.FromTestType(*rec))
}

// GET /settings/test-types?includeInactive=true
func (ctl *TestTypeController) List(c *fiber.Ctx) error {
	rows, err := ctl.Svc.List(c.UserContext(), c.QueryBool("includeInactive", false))
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromTestTypes(rows))
}

// GET /settings/test-types/:id
func (ctl *TestTypeController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	rec, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromTestType(*rec))
}

// PATCH /settings/test-types/:id
func (ctl *TestTypeController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.PatchTestTypeRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromTestType(*rec))
}

// DELETE /settings/test-types/:id
func (ctl *TestTypeController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonDeleted(c, "Test type deleted successfully", "تم حذف نوع الاختبار بنجاح")
}
