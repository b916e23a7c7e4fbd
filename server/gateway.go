package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket 网关：让浏览器客户端走与 TCP 完全相同的注册/路由/广播路径
// WS 自带消息边界，无需 4 字节长度前缀封帧

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

// wsTransport 将 gorilla WebSocket 连接适配为 Transport
type wsTransport struct {
	ws *websocket.Conn
}

func (t *wsTransport) ReadMessage() ([]byte, error) {
	for {
		typ, payload, err := t.ws.ReadMessage()
		if err != nil {
			return nil, err
		}
		if typ == websocket.TextMessage || typ == websocket.BinaryMessage {
			return payload, nil
		}
	}
}

func (t *wsTransport) WriteMessage(payload []byte) error {
	_ = t.ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return t.ws.WriteMessage(websocket.TextMessage, payload)
}

// WriteRaw WS 无“裸字节”一说，拒绝提示作为一条文本消息发出
func (t *wsTransport) WriteRaw(b []byte) error {
	return t.WriteMessage(b)
}

func (t *wsTransport) Close() error { return t.ws.Close() }

func (t *wsTransport) RemoteAddr() string { return t.ws.RemoteAddr().String() }

// HandleWS WebSocket 接入：GET /ws
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Errorf("upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	ws.SetReadLimit(1 << 20) // 与帧协议的 MaxFrameSize 对齐
	s.HandleTransport(&wsTransport{ws: ws})
}
