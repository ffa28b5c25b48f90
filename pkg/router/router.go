// Package router serves live views: the static first render over HTTP and
// the WebSocket session that keeps the page in sync afterwards.
package router

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
	"github.com/gabrielmiguelok/golivefolio/pkg/metrics"
	"github.com/gabrielmiguelok/golivefolio/pkg/pool"
	"github.com/gabrielmiguelok/golivefolio/pkg/protocol"
	"github.com/gabrielmiguelok/golivefolio/pkg/transport"
	"github.com/google/uuid"
)

// Common router errors.
var (
	ErrNilRenderer = errors.New("component returned nil renderer")
	ErrNotJoined   = errors.New("channel not joined")
	ErrTooManyConn = errors.New("too many live connections")
	ErrShutdown    = errors.New("live router is shutting down")
)

// Router handles HTTP routing for live views.
type Router struct {
	mux          *http.ServeMux
	liveRoutes   map[string]*LiveRoute
	errorHandler ErrorHandler

	config  core.Config
	log     logging.Logger
	codecs  *protocol.CodecRegistry
	metrics *metrics.Metrics
	clock   core.Clock

	sessions *SessionManager
	sockets  *core.SocketManager

	wg sync.WaitGroup
	mu sync.RWMutex
}

// LiveRoute defines a route that renders a live component.
type LiveRoute struct {
	// Path is the URL path pattern.
	Path string

	// Component creates a fresh component for every request.
	Component func() core.Component

	// Middleware are route-specific middleware.
	Middleware []Middleware
}

// Middleware is a function that wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// ErrorHandler handles errors during request processing.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures a Router.
type Option func(*Router)

// WithConfig sets timeouts, origins and limits.
func WithConfig(cfg core.Config) Option {
	return func(r *Router) {
		r.config = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(log logging.Logger) Option {
	return func(r *Router) {
		if log != nil {
			r.log = log
		}
	}
}

// WithCodecs sets the codec registry used to negotiate a codec per connection.
func WithCodecs(reg *protocol.CodecRegistry) Option {
	return func(r *Router) {
		if reg != nil {
			r.codecs = reg
		}
	}
}

// WithMetrics records connection and message metrics into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithClock sets the clock of every socket.
func WithClock(c core.Clock) Option {
	return func(r *Router) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithErrorHandler sets the handler for failed HTTP renders.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Router) {
		if h != nil {
			r.errorHandler = h
		}
	}
}

// New creates a new router.
func New(opts ...Option) *Router {
	r := &Router{
		mux:        http.NewServeMux(),
		liveRoutes: make(map[string]*LiveRoute),
		config:     core.DefaultConfig(),
		log:        logging.NopLogger{},
		codecs:     protocol.NewCodecRegistry(),
		clock:      core.SystemClock(),
		sockets:    core.NewSocketManager(),
	}
	r.errorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
		logging.L(req.Context()).Error("live render failed", logging.Err(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
	for _, opt := range opts {
		opt(r)
	}

	smc := DefaultSessionManagerConfig()
	smc.MaxSessions = r.config.MaxConnections
	r.sessions = NewSessionManager(smc)
	return r
}

// Sessions returns the session manager.
func (r *Router) Sessions() *SessionManager {
	return r.sessions
}

// CloseIdle closes the transports of sessions that sent nothing, not even a
// heartbeat, for longer than the session TTL. It returns how many were closed.
func (r *Router) CloseIdle(now time.Time) int {
	idle := r.sessions.Idle(now)
	for _, s := range idle {
		r.log.Info("closing idle live session", logging.String("session", s.ID))
		s.expire()
		s.Transport.Close()
	}
	return len(idle)
}

// Sockets returns the socket manager.
func (r *Router) Sockets() *core.SocketManager {
	return r.sockets
}

// Codecs returns the codec registry.
func (r *Router) Codecs() *protocol.CodecRegistry {
	return r.codecs
}

// Live registers a live route.
func (r *Router) Live(path string, component func() core.Component, mw ...Middleware) {
	route := &LiveRoute{
		Path:       path,
		Component:  component,
		Middleware: mw,
	}

	r.mu.Lock()
	r.liveRoutes[path] = route
	r.mu.Unlock()

	r.mux.Handle(path, r.handleLive(route))
}

// Route returns the live route registered for path.
func (r *Router) Route(path string) (*LiveRoute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	route, ok := r.liveRoutes[path]
	return route, ok
}

// Handle registers a standard HTTP handler.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) handleLive(route *LiveRoute) http.Handler {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if isWebSocketRequest(req) {
			r.handleWebSocket(w, req, route)
			return
		}
		r.renderLive(w, req, route)
	})
	for i := len(route.Middleware) - 1; i >= 0; i-- {
		h = route.Middleware[i](h)
	}
	return h
}

// renderLive mounts a fresh component and writes its static render.
func (r *Router) renderLive(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	ctx := req.Context()
	component := route.Component()

	params := extractParams(req)
	session := extractSession(req)
	ctx = core.WithSession(core.WithParams(ctx, params), session)

	if err := component.Mount(ctx, params, session); err != nil {
		r.errorHandler(w, req, err)
		return
	}
	defer component.Terminate(ctx, core.TerminateNormal)

	renderer := component.Render(ctx)
	if renderer == nil {
		r.errorHandler(w, req, ErrNilRenderer)
		return
	}

	html, err := pool.RenderString(ctx, renderer)
	if err != nil {
		r.errorHandler(w, req, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// handleWebSocket upgrades the request and starts the live session.
// The codec is picked by the "codec" query parameter.
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request, route *LiveRoute) {
	if r.sockets.IsShutdown() {
		http.Error(w, ErrShutdown.Error(), http.StatusServiceUnavailable)
		return
	}
	if max := r.config.MaxConnections; max > 0 && r.sockets.Count() >= max {
		r.metrics.RecordError("limit")
		http.Error(w, ErrTooManyConn.Error(), http.StatusServiceUnavailable)
		return
	}

	codec := r.codecs.Resolve(req.URL.Query().Get("codec"))
	ws := transport.NewWebSocketTransport(transport.ConfigFrom(r.config), codec, r.log)
	if err := ws.Upgrade(w, req); err != nil {
		r.metrics.RecordError("upgrade")
		r.log.Warn("websocket upgrade failed",
			logging.String("origin", req.Header.Get("Origin")), logging.Err(err))
		return
	}

	r.Attach(ws, route.Component(), extractParams(req), extractSession(req))
}

// Attach binds component to an open transport and runs the session loop in
// the background until the transport closes or the client leaves.
func (r *Router) Attach(tr transport.Transport, component core.Component, params core.Params, session core.Session) *LiveViewSession {
	socketID := uuid.NewString()
	socket := core.NewSocket(socketID, NewTransportAdapter(tr, r.metrics), core.WithClock(r.clock))

	if bc, ok := component.(interface{ SetSocket(*core.Socket) }); ok {
		bc.SetSocket(socket)
	}

	lv := NewLiveViewSession(socketID, component, params, session)
	lv.Socket = socket
	lv.Transport = tr

	if evicted := r.sessions.Add(lv); evicted != nil {
		r.log.Info("evicting idle live session", logging.String("session", evicted.ID))
		evicted.Transport.Close()
	}
	r.sockets.Add(socket)
	r.metrics.ConnectionOpened()

	// the connection outlives the upgrade request, so the loop gets its own context
	ctx := core.BuildContext(context.Background(), socket, session, params)
	ctx = logging.ContextWithLogger(ctx, r.log.With(logging.String("socket", socketID)))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.messageLoop(ctx, lv)
	}()
	return lv
}

// Shutdown closes every live connection and waits for the session loops.
func (r *Router) Shutdown(ctx context.Context) error {
	if err := r.sockets.Shutdown(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// extractSession captures the request cookies.
func extractSession(req *http.Request) core.Session {
	session := make(core.Session)
	for _, cookie := range req.Cookies() {
		session["cookie:"+cookie.Name] = cookie.Value
	}
	return session
}

// extractParams extracts query parameters.
func extractParams(req *http.Request) core.Params {
	params := make(core.Params)
	for key, values := range req.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func isWebSocketRequest(req *http.Request) bool {
	return strings.Contains(strings.ToLower(req.Header.Get("Upgrade")), "websocket")
}
