// Package authhdl - Handler đăng ký / đăng nhập.
package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/auth/dto"
	authsvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/auth/service"
	basehdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/handler"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
)

// AuthHandler xử lý các request xác thực.
type AuthHandler struct {
	CustomerService *authsvc.CustomerService
}

// NewAuthHandler tạo AuthHandler mới.
func NewAuthHandler() (*AuthHandler, error) {
	customerSvc, err := authsvc.NewCustomerService()
	if err != nil {
		return nil, fmt.Errorf("tạo CustomerService: %w", err)
	}
	return &AuthHandler{CustomerService: customerSvc}, nil
}

// HandleRegister xử lý POST /auth/register.
func (h *AuthHandler) HandleRegister(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input authdto.RegisterInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.CustomerService.Register(c.Context(), &input)
		basehdl.HandleCreated(c, result, err)
		return nil
	})
}

// HandleLogin xử lý POST /auth/login.
func (h *AuthHandler) HandleLogin(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input authdto.LoginInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.CustomerService.Login(c.Context(), &input)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleListCustomers xử lý GET /customers — danh sách khách hàng cho trang quản trị.
func (h *AuthHandler) HandleListCustomers(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		page, limit := basehdl.GetPagination(c)
		result, err := h.CustomerService.ListCustomers(c.Context(), page, limit)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleProfile xử lý GET /auth/me — thông tin tài khoản đang đăng nhập.
func (h *AuthHandler) HandleProfile(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)

		// Tài khoản admin cố định không có document trong customers
		if role == authsvc.RoleAdmin {
			basehdl.HandleResponse(c, fiber.Map{
				"userId": userID,
				"role":   role,
				"name":   global.ServerConfig.AdminName,
			}, nil)
			return nil
		}

		id, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		customer, err := h.CustomerService.FindOneById(c.Context(), id)
		basehdl.HandleResponse(c, customer, err)
		return nil
	})
}
