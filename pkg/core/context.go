package core

import "context"

type contextKey int

const (
	socketKey contextKey = iota
	sessionKey
	paramsKey
)

// WithSocket adds a socket to the context.
func WithSocket(ctx context.Context, socket *Socket) context.Context {
	return context.WithValue(ctx, socketKey, socket)
}

// SocketFromContext returns the socket stored by WithSocket, or nil.
func SocketFromContext(ctx context.Context) *Socket {
	s, _ := ctx.Value(socketKey).(*Socket)
	return s
}

// WithSession adds session data to the context.
func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey).(Session)
	return s
}

// WithParams adds mount params to the context.
func WithParams(ctx context.Context, params Params) context.Context {
	return context.WithValue(ctx, paramsKey, params)
}

// ParamsFromContext returns the params stored by WithParams.
func ParamsFromContext(ctx context.Context) Params {
	p, _ := ctx.Value(paramsKey).(Params)
	return p
}

// BuildContext returns the context a connected component runs under.
func BuildContext(ctx context.Context, socket *Socket, session Session, params Params) context.Context {
	return WithParams(WithSession(WithSocket(ctx, socket), session), params)
}

// Event is a client event as recorded by the test harness.
type Event struct {
	Type    string         `json:"type"`
	Target  string         `json:"target"`
	Payload map[string]any `json:"payload,omitempty"`
}
