package chat

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	chatmodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/chat/models"
	chatsvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/chat/service"
)

// gatedStore chặn Insert cho đến khi test mở release, để tái hiện
// khoảng thời gian relay đang chờ database giữa lúc snapshot người nhận
// và lúc gửi payload.
type gatedStore struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *gatedStore) Insert(ctx context.Context, doc chatmodels.Message) (chatmodels.Message, error) {
	s.once.Do(func() { close(s.started) })
	<-s.release
	doc.ID = primitive.NewObjectID()
	return doc, nil
}

func (s *gatedStore) Conversation(ctx context.Context, userA, userB string) ([]chatmodels.Message, error) {
	return []chatmodels.Message{}, nil
}

func TestClientSendAfterCloseDropsPayload(t *testing.T) {
	c := newClient(nil, nil)
	c.closeSend()

	// Không được panic, payload bị bỏ
	c.Send(chatsvc.OutboundMessage{Message: "xin chào"})
	c.closeSend() // gọi lặp cũng an toàn
}

func TestDeliveryDuringDisconnectDoesNotPanic(t *testing.T) {
	store := newGatedStore()
	relay := chatsvc.NewRelayWithStore(store, "admin-1")

	sender := newClient(nil, nil)
	receiver := newClient(nil, nil)
	relay.Join("user-1", sender)
	relay.Join("user-2", receiver)

	done := make(chan struct{})
	go func() {
		defer close(done)
		relay.SendMessage(context.Background(), "user-1", sender, "user-2", "xin chào")
	}()

	// Đợi relay bắt đầu lưu (đã snapshot người nhận), rồi cho người nhận
	// ngắt kết nối đúng trong cửa sổ đó
	<-store.started
	relay.Disconnect(receiver)
	receiver.closeSend()
	close(store.release)
	<-done

	// Người gửi vẫn nhận echo, người nhận đã đóng không panic
	select {
	case msg := <-sender.send:
		assert.Equal(t, "xin chào", msg.Message)
	default:
		t.Fatal("người gửi phải nhận được echo")
	}
	assert.False(t, relay.IsOnline("user-2"))
}
