package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dinhanhkiet510/doanchuyennganh/config"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/database"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initConfig()           // Khởi tạo cấu hình server
	initValidator()        // Khởi tạo validator
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Products = "products"
	global.MongoDB_ColNames.Categories = "categories"
	global.MongoDB_ColNames.Customers = "customers"
	global.MongoDB_ColNames.Checkouts = "checkout"
	global.MongoDB_ColNames.Orders = "orders"
	global.MongoDB_ColNames.OrderItems = "order_items"
	global.MongoDB_ColNames.Messages = "messages"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo validator (đăng ký custom validators: no_xss, exists)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo các index cho các collection
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.CreateStoreIndexes(ctx, db); err != nil {
		logrus.Fatalf("Failed to create indexes: %v", err)
	}
	logrus.Info("Ensured database indexes")
}
