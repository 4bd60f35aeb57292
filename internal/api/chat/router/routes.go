// Package router đăng ký route đọc lịch sử chat thuộc domain chat.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	chathdl "github.com/dinhanhkiet510/doanchuyennganh/internal/api/chat/handler"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/api/middleware"
	apirouter "github.com/dinhanhkiet510/doanchuyennganh/internal/api/router"
)

// Register đăng ký các route chat lên v1.
// Tin nhắn realtime đi qua websocket riêng, HTTP chỉ phục vụ lịch sử.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	messageHandler, err := chathdl.NewMessageHandler()
	if err != nil {
		return fmt.Errorf("tạo MessageHandler: %w", err)
	}

	authMiddlewares := []fiber.Handler{middleware.AuthMiddleware()}
	apirouter.RegisterRouteWithMiddleware(v1, "/messages", "GET", "/:customerId", authMiddlewares, messageHandler.HandleHistory)

	return nil
}
