package orderhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/handler"
	orderdto "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/dto"
	ordersvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/order/service"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
)

// AdminOrderHandler xử lý các request quản trị đơn hàng.
type AdminOrderHandler struct {
	AdminService *ordersvc.AdminOrderService
}

// NewAdminOrderHandler tạo AdminOrderHandler mới.
func NewAdminOrderHandler() (*AdminOrderHandler, error) {
	adminSvc, err := ordersvc.NewAdminOrderService()
	if err != nil {
		return nil, fmt.Errorf("tạo AdminOrderService: %w", err)
	}
	return &AdminOrderHandler{AdminService: adminSvc}, nil
}

// HandleListOrders xử lý GET /orders — danh sách đơn cho trang quản trị.
func (h *AdminOrderHandler) HandleListOrders(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		page, limit := basehdl.GetPagination(c)
		result, err := h.AdminService.ListOrders(c.Context(), page, limit)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleUpdateStatus xử lý PUT /orders/:id — đổi trạng thái đơn.
func (h *AdminOrderHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		orderID, err := basehdl.GetIDFromParams(c, "id")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		var input orderdto.UpdateStatusInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		err = h.AdminService.UpdateStatus(c.Context(), orderID, input.Status)
		basehdl.HandleResponse(c, fiber.Map{"message": "Cập nhật trạng thái thành công"}, err)
		return nil
	})
}

// HandleMyOrders xử lý GET /my-orders — lịch sử mua hàng của khách đang đăng nhập.
// Customer id luôn lấy từ token, không nhận từ client.
func (h *AdminOrderHandler) HandleMyOrders(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, _ := c.Locals("user_id").(string)
		customerID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		result, err := h.AdminService.ListCustomerOrders(c.Context(), customerID)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleStatistics xử lý GET /orders/statistics — dữ liệu biểu đồ dashboard.
// Query: days (mặc định 30).
func (h *AdminOrderHandler) HandleStatistics(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		days := 30
		if v := c.Query("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				days = n
			}
		}
		result, err := h.AdminService.Statistics(c.Context(), days)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}
