package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	chatsvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/chat/service"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/chat"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/database"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/logger"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// startChatServer khởi động websocket server chat trên goroutine riêng.
func startChatServer() *chat.Server {
	log := logger.GetAppLogger()

	relay, err := chatsvc.NewRelay()
	if err != nil {
		log.Fatalf("Failed to create chat relay: %v", err)
	}

	server := chat.NewServer(relay, global.ServerConfig.ChatAddress)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("💬 [CHAT] Websocket server panic")
			}
		}()
		if err := server.Start(); err != nil {
			log.WithField("error", err.Error()).Error("💬 [CHAT] Websocket server dừng vì lỗi")
		}
	}()
	return server
}

// main_thread khởi tạo và chạy Fiber server trên main thread.
func main_thread(chatServer *chat.Server) {
	app := InitFiberApp()

	cfg := global.ServerConfig
	address := cfg.Address
	if !strings.Contains(address, ":") {
		address = ":" + address
	}

	log := logger.GetAppLogger()

	// Shutdown khi nhận SIGINT / SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		sig := <-quit
		log.WithField("signal", sig.String()).Info("Nhận tín hiệu dừng, đang shutdown...")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := chatServer.Shutdown(ctx); err != nil {
			log.WithField("error", err.Error()).Warn("Shutdown chat server lỗi")
		}
		if err := app.ShutdownWithContext(ctx); err != nil {
			log.WithField("error", err.Error()).Warn("Shutdown Fiber lỗi")
		}
		if err := database.CloseInstance(global.MongoDB_Session); err != nil {
			log.WithField("error", err.Error()).Warn("Đóng kết nối MongoDB lỗi")
		}
	}()

	log.WithField("address", address).Info("Starting Fiber server...")
	if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục (config, validator, database)
	InitGlobal()

	// Khởi tạo registry collections
	InitRegistry()

	// Khởi động websocket chat server (cổng riêng, xem CHAT_ADDRESS)
	chatServer := startChatServer()

	// Chạy Fiber server trên main thread
	main_thread(chatServer)
}
