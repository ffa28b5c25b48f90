package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/protocol"
)

func TestWebSocket_OriginValidation(t *testing.T) {
	tests := []struct {
		name          string
		origins       []string
		devMode       bool
		origin        string
		host          string
		expectAllowed bool
	}{
		{"same-origin allowed", nil, false, "https://example.com", "example.com", true},
		{"no origin allowed", nil, false, "", "example.com", true},
		{"explicit origin allowed", []string{"https://allowed.com"}, false, "https://allowed.com", "example.com", true},
		{"origin not in list blocked", []string{"https://allowed.com"}, false, "https://attacker.com", "example.com", false},
		{"wildcard allows all", []string{"*"}, false, "https://any-site.com", "example.com", true},
		{"insecure dev mode allows all", nil, true, "https://attacker.com", "example.com", true},
		{"cross-origin blocked by default", nil, false, "https://other-site.com", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.AllowedOrigins = tt.origins
			cfg.InsecureDevMode = tt.devMode
			transport := NewWebSocketTransport(cfg, nil, nil)

			allowed := transport.isOriginAllowed(tt.origin, tt.host)
			if allowed != tt.expectAllowed {
				t.Errorf("isOriginAllowed(%q, %q) = %v, want %v",
					tt.origin, tt.host, allowed, tt.expectAllowed)
			}
		})
	}
}

func TestWebSocket_RejectsInvalidOrigin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowedOrigins = []string{"https://allowed.com"}
	transport := NewWebSocketTransport(cfg, nil, nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://attacker.com")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Connection", "Upgrade")
	req.Host = "example.com"

	w := httptest.NewRecorder()

	if err := transport.Upgrade(w, req); err != ErrOriginNotAllowed {
		t.Errorf("Expected ErrOriginNotAllowed, got %v", err)
	}
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

func TestWebSocket_OriginPatterns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowedOrigins = []string{"https://allowed.com", "*", "::bad"}
	transport := NewWebSocketTransport(cfg, nil, nil)

	got := strings.Join(transport.originPatterns(), ",")
	if got != "allowed.com,*" {
		t.Errorf("originPatterns() = %q", got)
	}
}

func TestConfigFrom(t *testing.T) {
	c := core.DevelopmentConfig()
	cfg := ConfigFrom(c)

	if cfg.ReadTimeout != c.Timeouts.WebSocketRead {
		t.Errorf("ReadTimeout = %v, want %v", cfg.ReadTimeout, c.Timeouts.WebSocketRead)
	}
	if cfg.MaxMessageSize != c.MaxMessageSize {
		t.Errorf("MaxMessageSize = %d, want %d", cfg.MaxMessageSize, c.MaxMessageSize)
	}
	if !cfg.InsecureDevMode {
		t.Error("InsecureDevMode should carry over")
	}
}

func TestWebSocket_RoundTrip(t *testing.T) {
	accepted := make(chan *WebSocketTransport, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tr := NewWebSocketTransport(DefaultConfig(), protocol.NewPhoenixCodec(), nil)
		if err := tr.Upgrade(w, r); err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		accepted <- tr
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	var tr *WebSocketTransport
	select {
	case tr = <-accepted:
	case <-ctx.Done():
		t.Fatal("server never accepted")
	}

	if err := conn.Write(ctx, websocket.MessageText, []byte(`["1","1","lv:x","phx_join",{}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case msg := <-tr.Receive():
		if msg.Type != protocol.MsgJoin {
			t.Errorf("got type %v, want join", msg.Type)
		}
	case <-ctx.Done():
		t.Fatal("no message received")
	}

	if err := tr.Send(protocol.OkReply("1", "lv:x", nil)); err != nil {
		t.Fatalf("send: %v", err)
	}
	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"phx_reply"`) {
		t.Errorf("unexpected frame %s", data)
	}

	go tr.Close()
	select {
	case <-tr.CloseChan():
	case <-ctx.Done():
		t.Fatal("transport did not close")
	}
}
