package chat

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	chatsvc "github.com/dinhanhkiet510/doanchuyennganh/internal/api/chat/service"
	"github.com/dinhanhkiet510/doanchuyennganh/internal/logger"
)

// upgrader nâng cấp HTTP lên websocket. Origin đã được kiểm soát
// ở tầng reverse proxy nên ở đây chấp nhận tất cả.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server là HTTP server riêng cho websocket chat.
// Fiber chạy trên fasthttp nên không host được gorilla/websocket,
// chat listen trên một địa chỉ riêng (CHAT_ADDRESS).
type Server struct {
	relay      *chatsvc.Relay
	httpServer *http.Server
	log        *logrus.Logger
}

// NewServer tạo Server chat trên địa chỉ addr (ví dụ ":8081").
func NewServer(relay *chatsvc.Relay, addr string) *Server {
	s := &Server{
		relay: relay,
		log:   logger.GetAppLogger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start chạy server chat, block đến khi Shutdown được gọi.
func (s *Server) Start() error {
	s.log.WithField("address", s.httpServer.Addr).Info("💬 [CHAT] Websocket server đang lắng nghe")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown dừng server chat, chờ các kết nối đang mở đóng xong.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// serveWs nâng cấp request lên websocket và khởi động hai pump
// cho kết nối mới. Client tự định danh bằng event join sau khi kết nối.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithField("error", err.Error()).Warn("💬 [CHAT] Upgrade websocket thất bại")
		return
	}

	client := newClient(s.relay, conn)
	go client.writePump()
	go client.readPump()
}
