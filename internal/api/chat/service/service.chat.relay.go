package chatsvc

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	chatmodels "github.com/dinhanhkiet510/doanchuyennganh/internal/api/chat/models"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/global"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/logger"
)

// Vai trò người gửi trong payload chat.
const (
	SenderRoleAdmin = "admin"
	SenderRoleUser  = "user"
)

// OutboundMessage là payload đẩy xuống client qua websocket
// sau khi tin nhắn đã được lưu.
type OutboundMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	SenderRole string `json:"senderRole"`
	Message    string `json:"message"`
	CreatedAt  int64  `json:"createdAt"`
}

// Client là một kết nối chat đang mở. Send không được block:
// tầng transport tự xử lý buffer và đóng kết nối chậm.
type Client interface {
	Send(msg OutboundMessage)
}

// Relay giữ danh sách người dùng đang online và chuyển tiếp tin nhắn.
// Mỗi userId chỉ giữ một kết nối: join từ tab mới ghi đè kết nối cũ.
type Relay struct {
	mu       sync.RWMutex
	sessions map[string]Client

	store   MessageStore
	adminID string
	log     *logrus.Logger
}

// NewRelay tạo Relay với store Mongo mặc định.
func NewRelay() (*Relay, error) {
	store, err := NewMongoMessageStore()
	if err != nil {
		return nil, err
	}
	return NewRelayWithStore(store, global.ServerConfig.AdminUserID), nil
}

// NewRelayWithStore tạo Relay với store tùy ý (dùng trong test).
func NewRelayWithStore(store MessageStore, adminID string) *Relay {
	return &Relay{
		sessions: make(map[string]Client),
		store:    store,
		adminID:  adminID,
		log:      logger.GetAppLogger(),
	}
}

// Join đăng ký kết nối cho một userId. Gọi lại với cùng userId
// sẽ ghi đè kết nối cũ (kết nối mới nhất thắng).
func (r *Relay) Join(userID string, c Client) {
	if userID == "" || c == nil {
		return
	}
	r.mu.Lock()
	r.sessions[userID] = c
	r.mu.Unlock()
	r.log.WithField("userId", userID).Info("💬 [CHAT] User joined")
}

// SendMessage lưu tin nhắn rồi chuyển tiếp.
//
// Người gửi phải join trước bằng đúng kết nối này, nếu không tin nhắn
// bị bỏ qua trong im lặng. Lưu thất bại thì chỉ log và dừng, không gửi
// cho ai. Lưu thành công thì đẩy cho người nhận nếu đang online và
// luôn echo lại cho người gửi.
func (r *Relay) SendMessage(ctx context.Context, senderID string, c Client, receiverID, text string) {
	if senderID == "" || receiverID == "" || text == "" {
		return
	}

	r.mu.RLock()
	joined, ok := r.sessions[senderID]
	receiver, receiverOnline := r.sessions[receiverID]
	r.mu.RUnlock()

	if !ok || joined != c {
		// Chưa join hoặc gửi từ kết nối khác: bỏ qua
		r.log.WithField("senderId", senderID).Debug("💬 [CHAT] Bỏ qua tin nhắn từ kết nối chưa join")
		return
	}

	senderRole := SenderRoleUser
	if senderID == r.adminID {
		senderRole = SenderRoleAdmin
	}

	saved, err := r.store.Insert(ctx, chatmodels.Message{
		SenderID:      senderID,
		ReceiverID:    receiverID,
		Message:       text,
		IsAdminSender: senderRole == SenderRoleAdmin,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"senderId":   senderID,
			"receiverId": receiverID,
			"error":      err.Error(),
		}).Error("💬 [CHAT] Lưu tin nhắn thất bại")
		return
	}

	payload := OutboundMessage{
		ID:         saved.ID.Hex(),
		SenderID:   saved.SenderID,
		ReceiverID: saved.ReceiverID,
		SenderRole: senderRole,
		Message:    saved.Message,
		CreatedAt:  saved.CreatedAt,
	}

	if receiverOnline {
		receiver.Send(payload)
	}
	c.Send(payload)
}

// Disconnect gỡ kết nối khỏi danh sách online. Chỉ gỡ khi entry
// vẫn trỏ đến đúng kết nối này, tránh gỡ nhầm kết nối mới hơn
// đã ghi đè sau khi user mở tab khác.
func (r *Relay) Disconnect(c Client) {
	if c == nil {
		return
	}
	r.mu.Lock()
	for userID, session := range r.sessions {
		if session == c {
			delete(r.sessions, userID)
			r.log.WithField("userId", userID).Info("💬 [CHAT] User disconnected")
		}
	}
	r.mu.Unlock()
}

// IsOnline cho biết một userId có kết nối đang mở hay không.
func (r *Relay) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[userID]
	return ok
}

// OnlineCount trả về số kết nối đang mở.
func (r *Relay) OnlineCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
