// Package orderhdl - Handler đặt hàng và quản trị đơn.
package orderhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/handler"
	orderdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/dto"
	ordersvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/service"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
)

// CheckoutHandler xử lý request đặt hàng.
type CheckoutHandler struct {
	PlacementService *ordersvc.PlacementService
}

// NewCheckoutHandler tạo CheckoutHandler mới.
func NewCheckoutHandler(mailer ordersvc.ConfirmationMailer) (*CheckoutHandler, error) {
	placementSvc, err := ordersvc.NewPlacementService(mailer)
	if err != nil {
		return nil, fmt.Errorf("tạo PlacementService: %w", err)
	}
	return &CheckoutHandler{PlacementService: placementSvc}, nil
}

// HandleCheckout xử lý POST /checkout.
// Thành công trả về 201 với {order_id, message}; message phản ánh kết quả gửi mail.
func (h *CheckoutHandler) HandleCheckout(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input orderdto.CheckoutInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		// customerId trong body được ưu tiên; thiếu thì lấy từ session đăng nhập.
		// Khách vãng lai không có cả hai thì đơn không gắn tài khoản nào.
		var customerID *primitive.ObjectID
		if id, err := primitive.ObjectIDFromHex(input.CustomerID); err == nil {
			customerID = &id
		} else if userIDStr, ok := c.Locals("user_id").(string); ok && userIDStr != "" {
			if id, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
				customerID = &id
			}
		}

		result, err := h.PlacementService.PlaceOrder(c.Context(), &input, customerID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		return basehdl.JSONResponse(c, common.StatusCreated, fiber.Map{
			"order_id": result.OrderID,
			"message":  result.Message,
		})
	})
}
