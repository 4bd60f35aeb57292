// Package router đăng ký các route thuộc domain auth.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/auth/handler"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/api/middleware"
	apirouter "github.com/dinhanhkiet510/doanchuyennganh/internal/api/router"
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	authHandler, err := authhdl.NewAuthHandler()
	if err != nil {
		return fmt.Errorf("tạo AuthHandler: %w", err)
	}

	authMiddlewares := []fiber.Handler{middleware.AuthMiddleware()}
	adminMiddlewares := []fiber.Handler{middleware.AuthMiddleware(), middleware.AdminRequired()}

	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/register", nil, authHandler.HandleRegister)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/login", nil, authHandler.HandleLogin)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "GET", "/me", authMiddlewares, authHandler.HandleProfile)

	// Danh sách khách hàng cho trang quản trị
	apirouter.RegisterRouteWithMiddleware(v1, "/customers", "GET", "/", adminMiddlewares, authHandler.HandleListCustomers)

	return nil
}
