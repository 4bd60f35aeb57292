package chatsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	chatmodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/chat/models"
)

const testAdminID = "admin-1"

// fakeMessageStore lưu tin nhắn trong bộ nhớ, không cần database.
type fakeMessageStore struct {
	docs     []chatmodels.Message
	failNext bool
}

func (s *fakeMessageStore) Insert(ctx context.Context, doc chatmodels.Message) (chatmodels.Message, error) {
	if s.failNext {
		return chatmodels.Message{}, errors.New("lỗi ghi tin nhắn")
	}
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now().UnixMilli()
	s.docs = append(s.docs, doc)
	return doc, nil
}

func (s *fakeMessageStore) Conversation(ctx context.Context, userA, userB string) ([]chatmodels.Message, error) {
	// docs đã theo thứ tự ghi nên không cần sắp xếp lại
	var result []chatmodels.Message
	for _, m := range s.docs {
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			result = append(result, m)
		}
	}
	return result, nil
}

// fakeClient ghi lại các payload nhận được.
type fakeClient struct {
	received []OutboundMessage
}

func (c *fakeClient) Send(msg OutboundMessage) {
	c.received = append(c.received, msg)
}

func TestRelaySendMessageDeliversAndEchoes(t *testing.T) {
	store := &fakeMessageStore{}
	relay := NewRelayWithStore(store, testAdminID)

	customer := &fakeClient{}
	admin := &fakeClient{}
	relay.Join("user-1", customer)
	relay.Join(testAdminID, admin)

	relay.SendMessage(context.Background(), "user-1", customer, testAdminID, "Shop còn loa JBL không?")

	// Tin nhắn phải được lưu trước khi chuyển tiếp
	require.Len(t, store.docs, 1)
	assert.Equal(t, "user-1", store.docs[0].SenderID)
	assert.Equal(t, testAdminID, store.docs[0].ReceiverID)
	assert.False(t, store.docs[0].IsAdminSender)

	// Người nhận online nhận được tin, người gửi luôn được echo
	require.Len(t, admin.received, 1)
	require.Len(t, customer.received, 1)
	assert.Equal(t, admin.received[0], customer.received[0])
	assert.Equal(t, SenderRoleUser, admin.received[0].SenderRole)
	assert.Equal(t, "Shop còn loa JBL không?", admin.received[0].Message)
	assert.NotEmpty(t, admin.received[0].ID)
}

func TestRelaySendMessageReceiverOffline(t *testing.T) {
	store := &fakeMessageStore{}
	relay := NewRelayWithStore(store, testAdminID)

	customer := &fakeClient{}
	relay.Join("user-1", customer)

	relay.SendMessage(context.Background(), "user-1", customer, testAdminID, "Alo?")

	// Vẫn lưu và vẫn echo dù người nhận offline
	assert.Len(t, store.docs, 1)
	assert.Len(t, customer.received, 1, "người gửi luôn được echo kể cả khi người nhận offline")
}

func TestRelaySendMessageUnjoinedSenderDropped(t *testing.T) {
	store := &fakeMessageStore{}
	relay := NewRelayWithStore(store, testAdminID)

	admin := &fakeClient{}
	relay.Join(testAdminID, admin)

	stranger := &fakeClient{}
	relay.SendMessage(context.Background(), "user-1", stranger, testAdminID, "xin chào")

	// Chưa join: không lưu, không gửi cho ai
	assert.Empty(t, store.docs)
	assert.Empty(t, admin.received)
	assert.Empty(t, stranger.received)
}

func TestRelaySendMessageFromStaleConnectionDropped(t *testing.T) {
	store := &fakeMessageStore{}
	relay := NewRelayWithStore(store, testAdminID)

	oldConn := &fakeClient{}
	newConn := &fakeClient{}
	relay.Join("user-1", oldConn)
	relay.Join("user-1", newConn) // tab mới ghi đè tab cũ

	relay.SendMessage(context.Background(), "user-1", oldConn, testAdminID, "tin từ tab cũ")
	assert.Empty(t, store.docs, "kết nối cũ đã bị ghi đè, tin nhắn phải bị bỏ qua")

	relay.SendMessage(context.Background(), "user-1", newConn, testAdminID, "tin từ tab mới")
	assert.Len(t, store.docs, 1)
	assert.Len(t, newConn.received, 1)
}

func TestRelayAdminSenderRole(t *testing.T) {
	store := &fakeMessageStore{}
	relay := NewRelayWithStore(store, testAdminID)

	admin := &fakeClient{}
	customer := &fakeClient{}
	relay.Join(testAdminID, admin)
	relay.Join("user-1", customer)

	relay.SendMessage(context.Background(), testAdminID, admin, "user-1", "Dạ shop còn hàng ạ")

	require.Len(t, store.docs, 1)
	assert.True(t, store.docs[0].IsAdminSender)
	require.Len(t, customer.received, 1)
	assert.Equal(t, SenderRoleAdmin, customer.received[0].SenderRole)
}

func TestRelayPersistFailureAbortsDelivery(t *testing.T) {
	store := &fakeMessageStore{failNext: true}
	relay := NewRelayWithStore(store, testAdminID)

	customer := &fakeClient{}
	admin := &fakeClient{}
	relay.Join("user-1", customer)
	relay.Join(testAdminID, admin)

	relay.SendMessage(context.Background(), "user-1", customer, testAdminID, "tin nhắn")

	// Lưu thất bại: không gửi cho người nhận, cũng không echo
	assert.Empty(t, admin.received)
	assert.Empty(t, customer.received)
}

func TestRelayDisconnect(t *testing.T) {
	store := &fakeMessageStore{}
	relay := NewRelayWithStore(store, testAdminID)

	conn := &fakeClient{}
	relay.Join("user-1", conn)
	require.True(t, relay.IsOnline("user-1"))

	relay.Disconnect(conn)
	assert.False(t, relay.IsOnline("user-1"))
	assert.Equal(t, 0, relay.OnlineCount())
}

func TestRelayDisconnectStaleConnectionKeepsNewer(t *testing.T) {
	store := &fakeMessageStore{}
	relay := NewRelayWithStore(store, testAdminID)

	oldConn := &fakeClient{}
	newConn := &fakeClient{}
	relay.Join("user-1", oldConn)
	relay.Join("user-1", newConn)

	// Tab cũ đóng sau khi tab mới đã join: không được gỡ entry của tab mới
	relay.Disconnect(oldConn)
	assert.True(t, relay.IsOnline("user-1"), "disconnect của kết nối cũ không được gỡ kết nối mới")

	relay.Disconnect(newConn)
	assert.False(t, relay.IsOnline("user-1"))
}

func TestMessageServiceHistory(t *testing.T) {
	store := &fakeMessageStore{}
	relay := NewRelayWithStore(store, testAdminID)
	svc := NewMessageServiceWithStore(store, testAdminID)

	customer := &fakeClient{}
	admin := &fakeClient{}
	other := &fakeClient{}
	relay.Join("user-1", customer)
	relay.Join("user-2", other)
	relay.Join(testAdminID, admin)

	ctx := context.Background()
	relay.SendMessage(ctx, "user-1", customer, testAdminID, "câu hỏi")
	relay.SendMessage(ctx, testAdminID, admin, "user-1", "câu trả lời")
	relay.SendMessage(ctx, "user-2", other, testAdminID, "hội thoại khác")

	history, err := svc.History(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, history, 2, "lịch sử chỉ chứa hội thoại giữa user-1 và admin")
	assert.Equal(t, "câu hỏi", history[0].Message)
	assert.Equal(t, "câu trả lời", history[1].Message)

	empty, err := svc.History(ctx, "user-khong-ton-tai")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
