// Package middleware chứa các middleware xác thực và phân quyền cho Fiber.
package middleware

import (
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	basehdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/handler"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/logger"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/utility"
)

// RoleAdmin là role của tài khoản quản trị trong JWT claims.
const RoleAdmin = "admin"

// AuthMiddleware xác thực JWT token từ Authorization header.
// Nếu token hợp lệ, lưu user_id và role vào Locals cho các handler phía sau.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}

		claims, err := utility.ParseToken(global.ServerConfig.JwtSecret, parts[1])
		if err != nil {
			if ve, ok := err.(*jwt.ValidationError); ok && ve.Errors&jwt.ValidationErrorExpired != 0 {
				basehdl.HandleResponse(c, nil, common.ErrTokenExpired)
				return nil
			}
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Invalid token")
			basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// OptionalAuthMiddleware parse token nếu có, nhưng không chặn request thiếu token.
// Dùng cho endpoint phục vụ cả khách vãng lai lẫn khách đã đăng nhập (checkout).
func OptionalAuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}
		if claims, err := utility.ParseToken(global.ServerConfig.JwtSecret, parts[1]); err == nil {
			c.Locals("user_id", claims.UserID)
			c.Locals("role", claims.Role)
		}
		return c.Next()
	}
}

// AdminRequired yêu cầu user đã xác thực phải có role admin.
// Dùng sau AuthMiddleware trên các route quản trị.
func AdminRequired() fiber.Handler {
	return func(c fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != RoleAdmin {
			basehdl.HandleResponse(c, nil, common.ErrForbidden)
			return nil
		}
		return c.Next()
	}
}
