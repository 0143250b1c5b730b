package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/system_settings/dto"
	"labsuite_backend/internals/features/settings/system_settings/service"
	helper "labsuite_backend/internals/helpers"
)

type SystemSettingController struct {
	Svc *service.SystemSettingService
	Log *zap.Logger
}

func NewSystemSettingController(db *gorm.DB, log *zap.Logger) *SystemSettingController {
	return &SystemSettingController{Svc: service.NewSystemSettingService(db, log), Log: log}
}

func keyParam(c *fiber.Ctx) (string, error) {
	key := strings.TrimSpace(c.Params("key"))
	if key == "" {
		return "", helper.BadRequest("key is required", "المفتاح مطلوب")
	}
	return key, nil
}

func (ctl *SystemSettingController) Create(c *fiber.Ctx) error {
	var req dto.CreateSystemSettingRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonCreated(c, dto.FromSystemSetting(*rec))
}

// GET /settings/system?category=
func (ctl *SystemSettingController) List(c *fiber.Ctx) error {
	var category *string
	if v := strings.TrimSpace(c.Query("category")); v != "" {
		category = &v
	}
	rows, err := ctl.Svc.List(c.UserContext(), category)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromSystemSettings(rows))
}

func (ctl *SystemSettingController) Get(c *fiber.Ctx) error {
	key, err := keyParam(c)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	rec, err := ctl.Svc.Get(c.UserContext(), key)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromSystemSetting(*rec))
}

// GET /settings/system/:key/value?default=
func (ctl *SystemSettingController) GetValue(c *fiber.Ctx) error {
	key, err := keyParam(c)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var def *string
	if c.Context().QueryArgs().Has("default") {
		v := c.Query("default")
		def = &v
	}
	val, err := ctl.Svc.GetSettingValue(c.UserContext(), key, def)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.SettingValueDTO{Key: key, Value: val})
}

// GET /settings/system/public (no auth)
func (ctl *SystemSettingController) Public(c *fiber.Ctx) error {
	vals, err := ctl.Svc.GetPublic(c.UserContext())
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, vals)
}

func (ctl *SystemSettingController) Patch(c *fiber.Ctx) error {
	key, err := keyParam(c)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.PatchSystemSettingRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Update(c.UserContext(), key, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromSystemSetting(*rec))
}

// PATCH /settings/system, always 200; failures are reported per item.
func (ctl *SystemSettingController) BulkUpdate(c *fiber.Ctx) error {
	var req dto.BulkUpdateRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	return helper.JsonOK(c, ctl.Svc.BulkUpdate(c.UserContext(), req.Settings))
}

func (ctl *SystemSettingController) Delete(c *fiber.Ctx) error {
	key, err := keyParam(c)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), key); err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonDeleted(c, "Setting deleted successfully", "تم حذف الإعداد بنجاح")
}
