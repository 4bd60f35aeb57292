// Package chatsvc - Service chat giữa khách hàng và admin.
package chatsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/base/service"
	chatmodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/chat/models"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/common"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
)

// MessageStore ghi tin nhắn và đọc hội thoại giữa hai người dùng.
// Tách interface để Relay test được với store in-memory.
type MessageStore interface {
	Insert(ctx context.Context, doc chatmodels.Message) (chatmodels.Message, error)
	Conversation(ctx context.Context, userA, userB string) ([]chatmodels.Message, error)
}

// MongoMessageStore triển khai MessageStore trên collection messages.
type MongoMessageStore struct {
	*basesvc.BaseServiceMongoImpl[chatmodels.Message]
}

// NewMongoMessageStore tạo MongoMessageStore mới.
func NewMongoMessageStore() (*MongoMessageStore, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Messages)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Messages, common.ErrNotFound)
	}
	return &MongoMessageStore{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[chatmodels.Message](coll)}, nil
}

func (s *MongoMessageStore) Insert(ctx context.Context, doc chatmodels.Message) (chatmodels.Message, error) {
	return s.InsertOne(ctx, doc)
}

// Conversation trả về toàn bộ tin nhắn hai chiều giữa userA và userB,
// sắp xếp theo thời gian tăng dần.
func (s *MongoMessageStore) Conversation(ctx context.Context, userA, userB string) ([]chatmodels.Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"senderId": userA, "receiverId": userB},
			bson.M{"senderId": userB, "receiverId": userA},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// MessageService phục vụ API đọc lịch sử chat qua HTTP.
type MessageService struct {
	store   MessageStore
	adminID string
}

// NewMessageService tạo MessageService với store Mongo mặc định.
func NewMessageService() (*MessageService, error) {
	store, err := NewMongoMessageStore()
	if err != nil {
		return nil, err
	}
	return NewMessageServiceWithStore(store, global.ServerConfig.AdminUserID), nil
}

// NewMessageServiceWithStore tạo MessageService với store tùy ý (dùng trong test).
func NewMessageServiceWithStore(store MessageStore, adminID string) *MessageService {
	return &MessageService{store: store, adminID: adminID}
}

// History trả về lịch sử chat giữa một khách hàng và admin.
func (s *MessageService) History(ctx context.Context, customerID string) ([]chatmodels.Message, error) {
	if customerID == "" {
		return nil, common.ErrRequiredField
	}
	messages, err := s.store.Conversation(ctx, customerID, s.adminID)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []chatmodels.Message{}
	}
	return messages, nil
}
