// Package router đăng ký các route thuộc domain catalog: products, categories.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	cataloghdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/handler"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/api/middleware"
	apirouter "github.com/dinhanhkiet510/doanchuyennganh/internal/api/router"
)

// Register đăng ký tất cả route catalog lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	productHandler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("tạo ProductHandler: %w", err)
	}
	categoryHandler, err := cataloghdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("tạo CategoryHandler: %w", err)
	}

	adminMiddlewares := []fiber.Handler{middleware.AuthMiddleware(), middleware.AdminRequired()}

	// Public: duyệt và tìm kiếm sản phẩm.
	// Đăng ký /search và /category trước /:id để không bị route param nuốt mất.
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "GET", "/", nil, productHandler.HandleListProducts)
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "GET", "/search", nil, productHandler.HandleSearchProducts)
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "GET", "/category/:categoryId", nil, productHandler.HandleProductsByCategory)
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "GET", "/:id", nil, productHandler.HandleGetProduct)
	apirouter.RegisterRouteWithMiddleware(v1, "/categories", "GET", "/", nil, categoryHandler.HandleListCategories)

	// Admin: quản lý sản phẩm và danh mục
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/products", "POST", "/", adminMiddlewares, productHandler.HandleCreateProduct)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/products", "PUT", "/:id", adminMiddlewares, productHandler.HandleUpdateProduct)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/products", "DELETE", "/:id", adminMiddlewares, productHandler.HandleDeleteProduct)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/categories", "POST", "/", adminMiddlewares, categoryHandler.HandleCreateCategory)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/categories", "PUT", "/:id", adminMiddlewares, categoryHandler.HandleUpdateCategory)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/categories", "DELETE", "/:id", adminMiddlewares, categoryHandler.HandleDeleteCategory)

	return nil
}
