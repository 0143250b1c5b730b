package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"labsuite_backend/internals/constants"
	helper "labsuite_backend/internals/helpers"
	"labsuite_backend/internals/helpers/authz"
)

// RequirePermission returns a guard factory. A request passes when its role
// grants perm in the policy or when perm is among its explicit permission claims.
// Must run after AuthJWT.
func RequirePermission(a *authz.Authorizer, log *zap.Logger) func(perm string) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("authz")

	return func(perm string) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if _, ok := c.Locals(authz.LocUserID).(string); !ok {
				return unauthorized(c, "missing user context")
			}
			role, _ := c.Locals(authz.LocRole).(string)
			granted, _ := c.Locals(authz.LocPermissions).([]string)

			if authz.HasPermission(granted, perm) {
				return c.Next()
			}
			ok, err := a.Allowed(role, perm)
			if err != nil {
				log.Error("policy check failed", zap.String("perm", perm), zap.Error(err))
				return helper.JsonError(c, fiber.StatusInternalServerError, "authorization check failed", "فشل التحقق من الصلاحية")
			}
			if ok {
				return c.Next()
			}

			log.Debug("permission denied", zap.String("role", role), zap.String("perm", perm))
			msg, msgAr := constants.PermissionError(perm)
			return helper.JsonError(c, fiber.StatusForbidden, msg, msgAr)
		}
	}
}
