// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	helper "labsuite_backend/internals/helpers"
	"labsuite_backend/internals/helpers/authz"
)

const expirySkew = 30 * time.Second

func unauthorized(c *fiber.Ctx, msg string) error {
	return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - "+msg, "غير مصرح")
}

// AuthJWT verifies an HMAC-signed bearer token and stores user id, role and
// permission claims in Locals.
func AuthJWT(secret string, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("auth")

	return func(c *fiber.Ctx) error {
		if secret == "" {
			log.Error("JWT secret is empty")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Missing JWT secret", "مفتاح JWT مفقود")
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return unauthorized(c, err.Error())
		}

		// exp is checked below with a small skew
		claims := jwt.MapClaims{}
		parser := jwt.Parser{
			SkipClaimsValidation: true,
			ValidMethods:         []string{"HS256", "HS384", "HS512"},
		}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}); err != nil {
			log.Debug("token parse failed", zap.Error(err))
			return unauthorized(c, "Token parse error")
		}

		if err := validateTokenExpiry(claims, expirySkew, time.Now()); err != nil {
			log.Debug("token expired", zap.Error(err))
			return unauthorized(c, "Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return unauthorized(c, "Invalid or missing user ID")
		}

		c.Locals(authz.LocUserID, userID.String())
		c.Locals(authz.LocRole, extractRole(claims))
		c.Locals(authz.LocPermissions, toStringSlice(claims["permissions"]))
		return c.Next()
	}
}
