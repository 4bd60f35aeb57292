// Package cataloghdl - Handler danh mục sản phẩm.
package cataloghdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/handler"
	catalogdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/dto"
	catalogsvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/catalog/service"
)

// CategoryHandler xử lý các request về danh mục.
type CategoryHandler struct {
	CategoryService *catalogsvc.CategoryService
}

// NewCategoryHandler tạo CategoryHandler mới.
func NewCategoryHandler() (*CategoryHandler, error) {
	categorySvc, err := catalogsvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("tạo CategoryService: %w", err)
	}
	return &CategoryHandler{CategoryService: categorySvc}, nil
}

// HandleListCategories xử lý GET /categories.
func (h *CategoryHandler) HandleListCategories(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		categories, err := h.CategoryService.ListCategories(c.Context())
		basehdl.HandleResponse(c, categories, err)
		return nil
	})
}

// HandleCreateCategory xử lý POST /admin/categories.
func (h *CategoryHandler) HandleCreateCategory(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input catalogdto.CategoryCreateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		category, err := h.CategoryService.CreateCategory(c.Context(), &input)
		basehdl.HandleCreated(c, category, err)
		return nil
	})
}

// HandleUpdateCategory xử lý PUT /admin/categories/:id.
func (h *CategoryHandler) HandleUpdateCategory(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.GetIDFromParams(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input catalogdto.CategoryUpdateInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		category, err := h.CategoryService.UpdateCategory(c.Context(), id, &input)
		basehdl.HandleResponse(c, category, err)
		return nil
	})
}

// HandleDeleteCategory xử lý DELETE /admin/categories/:id.
func (h *CategoryHandler) HandleDeleteCategory(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := basehdl.GetIDFromParams(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		err = h.CategoryService.DeleteById(c.Context(), id)
		basehdl.HandleResponse(c, nil, err)
		return nil
	})
}
