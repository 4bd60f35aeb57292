package chatmodels

import "go.mongodb.org/mongo-driver/bson/primitive"

// Message là một tin nhắn giữa khách hàng và admin.
// SenderID / ReceiverID lưu dạng chuỗi vì admin dùng định danh cố định
// từ cấu hình, không nằm trong collection customers.
type Message struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SenderID      string             `json:"senderId" bson:"senderId"`
	ReceiverID    string             `json:"receiverId" bson:"receiverId"`
	Message       string             `json:"message" bson:"message"`
	IsAdminSender bool               `json:"isAdminSender" bson:"isAdminSender"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
