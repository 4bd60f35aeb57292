// Package cataloghdl - Handler sản phẩm thuộc domain catalog.
package cataloghdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/handler"
	catalogdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/dto"
	catalogsvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/service"
)

// ProductHandler xử lý các request về sản phẩm.
type ProductHandler struct {
	ProductService *catalogsvc.ProductService
}

// NewProductHandler tạo ProductHandler mới.
func NewProductHandler() (*ProductHandler, error) {
	productSvc, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("tạo ProductService: %w", err)
	}
	return &ProductHandler{ProductService: productSvc}, nil
}

// HandleListProducts xử lý GET /products — danh sách sản phẩm có phân trang.
func (h *ProductHandler) HandleListProducts(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		page, limit := basehdl.GetPagination(c)
		result, err := h.ProductService.ListProducts(c.Context(), page, limit)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleSearchProducts xử lý GET /products/search?q= — gợi ý tìm kiếm theo tên.
func (h *ProductHandler) HandleSearchProducts(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		keyword := c.Query("q")
		products, err := h.ProductService.Search(c.Context(), keyword)
		basehdl.HandleResponse(c, products, err)
		return nil
	})
}

// HandleGetProduct xử lý GET /products/:id — chi tiết một sản phẩm.
func (h *ProductHandler) HandleGetProduct(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.GetIDFromParams(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		product, err := h.ProductService.FindOneById(c.Context(), id)
		basehdl.HandleResponse(c, product, err)
		return nil
	})
}

// HandleProductsByCategory xử lý GET /products/category/:categoryId.
func (h *ProductHandler) HandleProductsByCategory(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		categoryID, err := basehdl.GetIDFromParams(c, "categoryId")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		products, err := h.ProductService.FindByCategory(c.Context(), categoryID)
		basehdl.HandleResponse(c, products, err)
		return nil
	})
}

// HandleCreateProduct xử lý POST /admin/products.
func (h *ProductHandler) HandleCreateProduct(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input catalogdto.ProductCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		product, err := h.ProductService.CreateProduct(c.Context(), &input)
		basehdl.HandleCreated(c, product, err)
		return nil
	})
}

// HandleUpdateProduct xử lý PUT /admin/products/:id.
func (h *ProductHandler) HandleUpdateProduct(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.GetIDFromParams(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input catalogdto.ProductUpdateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		product, err := h.ProductService.UpdateProduct(c.Context(), id, &input)
		basehdl.HandleResponse(c, product, err)
		return nil
	})
}

// HandleDeleteProduct xử lý DELETE /admin/products/:id.
func (h *ProductHandler) HandleDeleteProduct(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.GetIDFromParams(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		err = h.ProductService.DeleteById(c.Context(), id)
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}
