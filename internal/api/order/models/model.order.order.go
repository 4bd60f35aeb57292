// Package models - Checkout, Order, OrderItem thuộc domain order.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái đơn hàng.
const (
	StatusPending    = "pending"    // Mới đặt, chờ xử lý
	StatusProcessing = "processing" // Đang chuẩn bị hàng
	StatusCompleted  = "completed"  // Đã giao xong
	StatusCancelled  = "cancelled"  // Đã hủy
)

// ValidStatuses danh sách trạng thái hợp lệ của đơn hàng.
var ValidStatuses = []string{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}

// IsValidStatus kiểm tra status có nằm trong danh sách trạng thái hợp lệ.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Checkout là snapshot thông tin giao hàng người mua nhập lúc đặt hàng (checkout).
// Giữ nguyên sau này dù khách có đổi thông tin tài khoản.
type Checkout struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	AttemptID string `json:"attemptId" bson:"attemptId"` // Gắn các bản ghi của cùng một lần đặt hàng
	Name      string `json:"name" bson:"name"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Address   string `json:"address" bson:"address"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// Order là đơn hàng (orders). Tổng tiền luôn được tính từ order_items,
// không lưu sẵn trong document.
type Order struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	AttemptID  string              `json:"attemptId" bson:"attemptId"`
	CheckoutID primitive.ObjectID  `json:"checkoutId" bson:"checkoutId"`
	CustomerID *primitive.ObjectID `json:"customerId,omitempty" bson:"customerId,omitempty"` // nil nếu khách vãng lai
	Status     string              `json:"status" bson:"status"`
	OrderDate  int64               `json:"orderDate" bson:"orderDate"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// OrderItem là một dòng hàng trong đơn (order_items).
// Price là đơn giá tại thời điểm đặt, không đổi khi giá sản phẩm thay đổi.
type OrderItem struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	OrderID   primitive.ObjectID `json:"orderId" bson:"orderId"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	Qty       int64              `json:"qty" bson:"qty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
