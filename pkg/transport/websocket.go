package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
	"github.com/gabrielmiguelok/golivefolio/pkg/protocol"
)

// WebSocket security errors
var (
	ErrOriginNotAllowed = errors.New("origin not allowed")
)

// WebSocketTransport implements Transport over a server-side WebSocket.
type WebSocketTransport struct {
	*BaseTransport
	conn  *websocket.Conn
	codec protocol.Codec
	log   logging.Logger
	mu    sync.Mutex
}

// NewWebSocketTransport creates a transport that frames messages with codec.
func NewWebSocketTransport(config Config, codec protocol.Codec, log logging.Logger) *WebSocketTransport {
	if codec == nil {
		codec = protocol.NewPhoenixCodec()
	}
	if log == nil {
		log = logging.NopLogger{}
	}
	return &WebSocketTransport{
		BaseTransport: NewBaseTransport(config),
		codec:         codec,
		log:           log,
	}
}

// Codec returns the frame codec.
func (t *WebSocketTransport) Codec() protocol.Codec {
	return t.codec
}

// isOriginAllowed checks if the origin is allowed for WebSocket connections.
func (t *WebSocketTransport) isOriginAllowed(origin string, requestHost string) bool {
	if t.config.InsecureDevMode {
		return true
	}

	// Empty origin = same-origin request (allowed)
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Host == requestHost {
		return true
	}

	for _, allowed := range t.config.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if allowedURL, err := url.Parse(allowed); err == nil && allowedURL.Host == originURL.Host {
			return true
		}
	}
	return false
}

// originPatterns converts the allowed origins to the host patterns the
// websocket library checks against.
func (t *WebSocketTransport) originPatterns() []string {
	patterns := make([]string, 0, len(t.config.AllowedOrigins))
	for _, allowed := range t.config.AllowedOrigins {
		if allowed == "*" {
			patterns = append(patterns, "*")
			continue
		}
		if u, err := url.Parse(allowed); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		}
	}
	return patterns
}

// Upgrade upgrades an HTTP connection to WebSocket.
// Validates origin header to prevent WebSocket hijacking attacks.
func (t *WebSocketTransport) Upgrade(w http.ResponseWriter, r *http.Request) error {
	origin := r.Header.Get("Origin")
	if !t.isOriginAllowed(origin, r.Host) {
		http.Error(w, "Forbidden: Origin not allowed", http.StatusForbidden)
		return ErrOriginNotAllowed
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: t.config.InsecureDevMode,
		OriginPatterns:     t.originPatterns(),
	})
	if err != nil {
		return fmt.Errorf("accept websocket: %w", err)
	}

	t.mu.Lock()
	t.conn = conn
	t.SetConnected(true)
	t.mu.Unlock()

	conn.SetReadLimit(t.config.MaxMessageSize)

	go t.readLoop()
	go t.writeLoop()
	go t.pingLoop()

	return nil
}

// Send queues msg for the write loop.
func (t *WebSocketTransport) Send(msg *protocol.Message) error {
	if !t.IsConnected() {
		return ErrNotConnected
	}

	timer := time.NewTimer(t.config.WriteTimeout)
	defer timer.Stop()

	select {
	case t.sendCh <- msg:
		return nil
	case <-t.closeCh:
		return ErrConnectionClosed
	case <-timer.C:
		return ErrSendTimeout
	}
}

// Close closes the WebSocket connection.
func (t *WebSocketTransport) Close() error {
	t.BaseTransport.Close()

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		err := t.conn.Close(websocket.StatusNormalClosure, "closing")
		t.conn = nil
		return err
	}
	return nil
}

func (t *WebSocketTransport) currentConn() *websocket.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}

// readLoop decodes client frames onto the receive channel.
func (t *WebSocketTransport) readLoop() {
	defer t.Close()

	for {
		conn := t.currentConn()
		if conn == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), t.config.ReadTimeout)
		_, data, err := conn.Read(ctx)
		cancel()

		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				t.log.Debug("websocket read ended", logging.Err(err))
			}
			return
		}

		msg, err := t.codec.Decode(data)
		if err != nil {
			t.log.Debug("dropping undecodable frame",
				logging.String("codec", t.codec.Name()), logging.Err(err))
			continue
		}

		select {
		case t.recvCh <- msg:
		case <-t.closeCh:
			return
		default:
			t.log.Warn("receive buffer full, dropping message", logging.String("event", msg.Event))
		}
	}
}

// writeLoop encodes queued messages onto the socket.
func (t *WebSocketTransport) writeLoop() {
	typ := websocket.MessageText
	if protocol.IsBinary(t.codec) {
		typ = websocket.MessageBinary
	}

	for {
		select {
		case msg := <-t.sendCh:
			conn := t.currentConn()
			if conn == nil {
				return
			}

			data, err := t.codec.Encode(msg)
			if err != nil {
				t.log.Error("failed to encode message",
					logging.String("event", msg.Event), logging.Err(err))
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
			err = conn.Write(ctx, typ, data)
			cancel()
			if err != nil {
				t.log.Debug("websocket write failed", logging.Err(err))
				t.Close()
				return
			}

		case <-t.closeCh:
			return
		}
	}
}

// pingLoop sends periodic pings to keep the connection alive.
func (t *WebSocketTransport) pingLoop() {
	ticker := time.NewTicker(t.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			conn := t.currentConn()
			if conn == nil {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), t.config.WriteTimeout)
			_ = conn.Ping(ctx)
			cancel()
		case <-t.closeCh:
			return
		}
	}
}
