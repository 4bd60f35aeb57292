// Package chat là tầng transport websocket của hệ thống chat.
// Nghiệp vụ (join, lưu, chuyển tiếp) nằm ở chatsvc.Relay; package này
// chỉ lo vòng đời kết nối và đọc / ghi frame JSON.
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	chatsvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/chat/service"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/logger"
)

const (
	// Thời gian tối đa cho một lần ghi xuống peer
	writeWait = 10 * time.Second

	// Thời gian tối đa chờ pong từ peer
	pongWait = 60 * time.Second

	// Chu kỳ gửi ping, phải nhỏ hơn pongWait
	pingPeriod = (pongWait * 9) / 10

	// Kích thước tối đa một frame từ client
	maxMessageSize = 4096

	// Số payload tối đa xếp hàng chờ ghi cho một client
	sendBufferSize = 64
)

// Các event trong frame websocket.
const (
	EventJoin           = "join"
	EventSendMessage    = "sendMessage"
	EventReceiveMessage = "receiveMessage"
)

// inboundFrame là frame client gửi lên: {event, data}.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// outboundFrame là frame server đẩy xuống client.
type outboundFrame struct {
	Event string                  `json:"event"`
	Data  chatsvc.OutboundMessage `json:"data"`
}

type joinData struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type sendMessageData struct {
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
}

// Client là một kết nối websocket đang mở, trung gian giữa
// gorilla conn và chatsvc.Relay.
type Client struct {
	relay *chatsvc.Relay
	conn  *websocket.Conn
	send  chan chatsvc.OutboundMessage
	log   *logrus.Logger

	// mu bảo vệ closed và việc đóng send. Relay có thể gọi Send từ
	// goroutine của người gửi ngay lúc readPump bên này đang thoát,
	// nên Send và closeSend phải cùng giữ lock để không ghi vào
	// channel đã đóng.
	mu     sync.Mutex
	closed bool

	// userID gán khi client join; chỉ readPump đọc / ghi nên không cần lock
	userID string
}

func newClient(relay *chatsvc.Relay, conn *websocket.Conn) *Client {
	return &Client{
		relay: relay,
		conn:  conn,
		send:  make(chan chatsvc.OutboundMessage, sendBufferSize),
		log:   logger.GetAppLogger(),
	}
}

// Send xếp payload vào hàng chờ ghi. Không block: client ghi quá chậm
// làm đầy buffer thì payload bị bỏ, kết nối vẫn sống. Kết nối đã đóng
// thì payload bị bỏ luôn, không panic.
func (c *Client) Send(msg chatsvc.OutboundMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		c.log.WithField("receiverId", msg.ReceiverID).Warn("💬 [CHAT] Buffer gửi đầy, bỏ payload")
	}
}

// closeSend đóng hàng chờ ghi, an toàn khi Send đang chạy song song.
func (c *Client) closeSend() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
}

// readPump đọc frame từ client và chuyển cho relay.
// Mỗi kết nối chạy đúng một readPump; thoát là lúc gỡ client khỏi relay.
func (c *Client) readPump() {
	defer func() {
		c.relay.Disconnect(c)
		c.closeSend()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithField("error", err.Error()).Warn("💬 [CHAT] Kết nối đóng bất thường")
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.log.WithField("error", err.Error()).Debug("💬 [CHAT] Frame không hợp lệ, bỏ qua")
			continue
		}

		switch frame.Event {
		case EventJoin:
			var data joinData
			if err := json.Unmarshal(frame.Data, &data); err != nil {
				continue
			}
			// Thiếu userId hoặc role thì bỏ qua. Role chỉ đánh dấu kết nối
			// đã khai danh; vai trò thật được suy từ userId phía server.
			if data.UserID == "" || data.Role == "" {
				continue
			}
			c.userID = data.UserID
			c.relay.Join(data.UserID, c)

		case EventSendMessage:
			var data sendMessageData
			if err := json.Unmarshal(frame.Data, &data); err != nil {
				continue
			}
			// userID rỗng khi chưa join: relay sẽ bỏ qua trong im lặng
			c.relay.SendMessage(context.Background(), c.userID, c, data.ReceiverID, data.Message)

		default:
			c.log.WithField("event", frame.Event).Debug("💬 [CHAT] Event không hỗ trợ, bỏ qua")
		}
	}
}

// writePump ghi payload xuống client và giữ kết nối sống bằng ping.
// Mỗi kết nối chạy đúng một writePump.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// readPump đã đóng channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(outboundFrame{Event: EventReceiveMessage, Data: msg}); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
