package controller

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/pricing/dto"
	"labsuite_backend/internals/features/settings/pricing/service"
	helper "labsuite_backend/internals/helpers"
)

type DistanceRateController struct {
	Svc *service.DistanceRateService
	Log *zap.Logger
}

func NewDistanceRateController(db *gorm.DB, log *zap.Logger) *DistanceRateController {
	return &DistanceRateController{Svc: service.NewDistanceRateService(db, log), Log: log}
}

func (ctl *DistanceRateController) Create(c *fiber.Ctx) error {
	var req dto.CreateDistanceRateRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonCreated(c, dto.FromDistanceRate(*rec))
}

func (ctl *DistanceRateController) List(c *fiber.Ctx) error {
	rows, err := ctl.Svc.List(c.UserContext(), c.QueryBool("includeInactive", false))
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromDistanceRates(rows))
}

func (ctl *DistanceRateController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	rec, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromDistanceRate(*rec))
}

func (ctl *DistanceRateController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	var req dto.PatchDistanceRateRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	rec, err := ctl.Svc.Update(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, dto.FromDistanceRate(*rec))
}

func (ctl *DistanceRateController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonDeleted(c, "Distance rate deleted successfully", "تم حذف سعر المسافة بنجاح")
}

// GET /settings/distance-rates/quote?km=12.5
func (ctl *DistanceRateController) Quote(c *fiber.Ctx) error {
	km, err := strconv.ParseFloat(c.Query("km"), 64)
	if err != nil || math.IsNaN(km) || math.IsInf(km, 0) {
		return helper.JsonError(c, fiber.StatusBadRequest, "km must be a number", "يجب أن تكون km رقماً")
	}
	q, err := ctl.Svc.Quote(c.UserContext(), km)
	if err != nil {
		return helper.FromError(c, ctl.Log, err)
	}
	return helper.JsonOK(c, q)
}
