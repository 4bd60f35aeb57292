// Package database - Các index cần thiết cho cửa hàng, tạo khi khởi động server.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
)

// CreateStoreIndexes tạo các index cho collections của cửa hàng.
// Gọi một lần khi khởi động, sau khi kết nối database thành công.
func CreateStoreIndexes(ctx context.Context, db *mongo.Database) error {
	// products: categoryId — lọc sản phẩm theo danh mục
	products := db.Collection(global.MongoDB_ColNames.Products)
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "categoryId", Value: 1}},
		Options: options.Index().SetName("product_category"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// products: name — tìm kiếm theo tên (prefix match)
	if _, err := products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("product_name"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// customers: username unique — đăng ký tài khoản
	customers := db.Collection(global.MongoDB_ColNames.Customers)
	if _, err := customers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("customer_username").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// orders: (customerId, createdAt) — lịch sử đơn hàng của khách
	orders := db.Collection(global.MongoDB_ColNames.Orders)
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "customerId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("order_customer_created").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// orders: status — lọc và thống kê đơn theo trạng thái
	if _, err := orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("order_status"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// order_items: orderId — load chi tiết của một đơn
	orderItems := db.Collection(global.MongoDB_ColNames.OrderItems)
	if _, err := orderItems.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetName("order_item_order"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// messages: (senderId, receiverId, createdAt) — load lịch sử hội thoại
	messages := db.Collection(global.MongoDB_ColNames.Messages)
	if _, err := messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "senderId", Value: 1},
			{Key: "receiverId", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("message_conversation"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// messages: (receiverId, createdAt) — load tin nhắn chiều ngược lại
	if _, err := messages.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "receiverId", Value: 1},
			{Key: "createdAt", Value: 1},
		},
		Options: options.Index().SetName("message_receiver_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
