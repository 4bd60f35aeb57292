// Package router đăng ký các route thuộc domain order: checkout, quản trị đơn.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/dinhanhkiet510/doanchuyennganh/internal/api/middleware"
	orderhdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/handler"
	ordersvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/service"
	apirouter "github.com/dinhanhkiet510/doanchuyennganh/internal/api/router"
)

// Register trả về RegisterFunc cho domain order, nhận mailer từ nơi khởi tạo app.
func Register(mailer ordersvc.ConfirmationMailer) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		checkoutHandler, err := orderhdl.NewCheckoutHandler(mailer)
		if err != nil {
			return fmt.Errorf("tạo CheckoutHandler: %w", err)
		}
		adminHandler, err := orderhdl.NewAdminOrderHandler()
		if err != nil {
			return fmt.Errorf("tạo AdminOrderHandler: %w", err)
		}

		optionalAuth := []fiber.Handler{middleware.OptionalAuthMiddleware()}
		authMiddlewares := []fiber.Handler{middleware.AuthMiddleware()}
		adminMiddlewares := []fiber.Handler{middleware.AuthMiddleware(), middleware.AdminRequired()}

		// Checkout: phục vụ cả khách vãng lai lẫn khách đã đăng nhập
		apirouter.RegisterRouteWithMiddleware(v1, "/checkout", "POST", "/", optionalAuth, checkoutHandler.HandleCheckout)

		// Lịch sử mua hàng của khách đang đăng nhập. Prefix riêng, không nằm
		// dưới /orders vì middleware áp theo prefix sẽ đòi quyền admin.
		apirouter.RegisterRouteWithMiddleware(v1, "/my-orders", "GET", "/", authMiddlewares, adminHandler.HandleMyOrders)

		// Quản trị đơn hàng. Đăng ký /statistics trước /:id.
		apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/statistics", adminMiddlewares, adminHandler.HandleStatistics)
		apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/", adminMiddlewares, adminHandler.HandleListOrders)
		apirouter.RegisterRouteWithMiddleware(v1, "/orders", "PUT", "/:id", adminMiddlewares, adminHandler.HandleUpdateStatus)

		return nil
	}
}
