// Package chathdl - Handler đọc lịch sử chat qua HTTP.
package chathdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/handler"
	chatsvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/chat/service"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/api/middleware"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
)

// MessageHandler xử lý request lịch sử chat.
type MessageHandler struct {
	MessageService *chatsvc.MessageService
}

// NewMessageHandler tạo MessageHandler mới.
func NewMessageHandler() (*MessageHandler, error) {
	svc, err := chatsvc.NewMessageService()
	if err != nil {
		return nil, fmt.Errorf("tạo MessageService: %w", err)
	}
	return &MessageHandler{MessageService: svc}, nil
}

// HandleHistory xử lý GET /messages/:customerId — lịch sử chat
// giữa một khách hàng và admin.
//
// Khách hàng chỉ được xem hội thoại của chính mình, admin xem được tất cả.
func (h *MessageHandler) HandleHistory(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		customerID := c.Params("customerId")
		if customerID == "" {
			basehdl.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		userID, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)
		if role != middleware.RoleAdmin && userID != customerID {
			basehdl.HandleResponse(c, nil, common.ErrForbidden)
			return nil
		}

		messages, err := h.MessageService.History(c.Context(), customerID)
		basehdl.HandleResponse(c, messages, err)
		return nil
	})
}
