package router

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
	"github.com/gabrielmiguelok/golivefolio/pkg/pool"
	"github.com/gabrielmiguelok/golivefolio/pkg/protocol"
)

// ErrComponentPanic is returned when a component handler panicked.
var ErrComponentPanic = errors.New("component panicked")

// messageLoop owns the session: client messages and the socket's deferred
// messages are handled here one at a time, so component state never needs
// locking.
func (r *Router) messageLoop(ctx context.Context, lv *LiveViewSession) {
	reason := core.TerminateNormal
	defer func() {
		if lv.Expired() {
			reason = core.TerminateTimeout
		}
		r.disconnect(lv, reason)
	}()

	recv := lv.Transport.Receive()
	closed := lv.Transport.CloseChan()

	for {
		select {
		case msg, ok := <-recv:
			if !ok {
				return
			}
			if !r.handleMessage(ctx, lv, msg) {
				return
			}

		case <-lv.Socket.Info():
			r.deliverInfo(ctx, lv)

		case <-closed:
			return

		case <-ctx.Done():
			reason = core.TerminateShutdown
			return
		}
	}
}

// handleMessage dispatches one client message. It returns false when the
// client left.
func (r *Router) handleMessage(ctx context.Context, lv *LiveViewSession, msg *protocol.Message) bool {
	lv.UpdateActivity()
	lv.Socket.UpdateActivity()
	r.metrics.MessageReceived(msg.Event)

	switch msg.Event {
	case protocol.EventHeartbeat, "phx_heartbeat":
		r.sendReply(lv, msg, nil)

	case protocol.EventJoin:
		r.handleJoin(ctx, lv, msg)

	case protocol.EventLeave:
		r.sendReply(lv, msg, nil)
		return false

	default:
		if !lv.Joined() {
			r.sendError(lv, msg, ErrNotJoined)
			return true
		}

		start := time.Now()
		payload := msg.Payload
		if payload == nil {
			payload = make(map[string]any)
		}
		err := r.guard(ctx, "event "+msg.Event, func(ctx context.Context) error {
			return lv.Component.HandleEvent(ctx, msg.Event, payload)
		})
		r.metrics.RecordEvent(time.Since(start))
		if err != nil {
			r.metrics.RecordError("event")
			logging.L(ctx).Warn("event failed", logging.String("event", msg.Event), logging.Err(err))
			r.sendError(lv, msg, err)
			return true
		}
		if msg.Ref != "" {
			r.sendReply(lv, msg, nil)
		}
		r.renderAndSendDiff(ctx, lv)
	}
	return true
}

// handleJoin mounts the component with the join params. The client already
// shows the static render, so the join only seeds the slot hashes; later
// renders send what changed.
func (r *Router) handleJoin(ctx context.Context, lv *LiveViewSession, msg *protocol.Message) {
	if lv.Joined() {
		r.sendReply(lv, msg, map[string]any{"socket": lv.SocketID})
		return
	}

	for k, v := range msg.GetPayloadMap("params") {
		if v != nil {
			lv.Params[k] = fmt.Sprint(v)
		}
	}

	err := r.guard(ctx, "mount", func(ctx context.Context) error {
		return lv.Component.Mount(ctx, lv.Params, lv.Session)
	})
	if err != nil {
		r.metrics.RecordError("mount")
		logging.L(ctx).Error("mount failed", logging.Err(err))
		r.sendError(lv, msg, err)
		return
	}
	lv.setJoined(msg.Topic, msg.JoinRef)

	html, err := r.render(ctx, lv)
	if err != nil {
		r.sendError(lv, msg, err)
		return
	}
	lv.SetSlotHashes(slotHashes(html))

	r.sendReply(lv, msg, map[string]any{"socket": lv.SocketID})
}

// deliverInfo hands every queued deferred message to the component, then
// sends one diff for the batch.
func (r *Router) deliverInfo(ctx context.Context, lv *LiveViewSession) {
	msgs := lv.Socket.DrainInfo()
	if len(msgs) == 0 {
		return
	}
	for _, m := range msgs {
		err := r.guard(ctx, "info", func(ctx context.Context) error {
			return lv.Component.HandleInfo(ctx, m)
		})
		if err != nil {
			r.metrics.RecordError("info")
			logging.L(ctx).Warn("info handler failed", logging.String("msg", fmt.Sprintf("%T", m)), logging.Err(err))
		}
	}
	if lv.Joined() {
		r.renderAndSendDiff(ctx, lv)
	}
}

// guard runs fn with the component timeout and turns panics into errors.
func (r *Router) guard(ctx context.Context, what string, fn func(context.Context) error) (err error) {
	if d := r.config.Timeouts.ComponentEvent; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	defer func() {
		if p := recover(); p != nil {
			r.metrics.RecordPanic()
			logging.L(ctx).Error("component panic",
				logging.String("in", what),
				logging.Any("panic", p),
				logging.String("stack", string(debug.Stack())))
			err = fmt.Errorf("%s: %w", what, ErrComponentPanic)
		}
	}()
	return fn(ctx)
}

func (r *Router) render(ctx context.Context, lv *LiveViewSession) (string, error) {
	renderer := lv.Component.Render(ctx)
	if renderer == nil {
		return "", ErrNilRenderer
	}
	return pool.RenderString(ctx, renderer)
}

// renderAndSendDiff re-renders the component and sends the changed slots.
func (r *Router) renderAndSendDiff(ctx context.Context, lv *LiveViewSession) {
	start := time.Now()
	html, err := r.render(ctx, lv)
	if err != nil {
		r.metrics.RecordError("render")
		logging.L(ctx).Error("render failed", logging.Err(err))
		return
	}

	payload, next := buildDiff(html, lv.SlotHashes())
	lv.SetSlotHashes(next)
	r.metrics.RecordRender(time.Since(start), payload.Size())

	if payload.IsEmpty() {
		return
	}
	payload.Version = lv.nextVersion()
	if err := lv.Socket.SendOptimizedDiff(payload); err != nil {
		logging.L(ctx).Debug("diff not sent", logging.Err(err))
	}
}

func (r *Router) sendReply(lv *LiveViewSession, msg *protocol.Message, response map[string]any) {
	if response == nil {
		response = map[string]any{}
	}
	r.send(lv, protocol.OkReply(msg.Ref, msg.Topic, response).WithJoinRef(msg.JoinRef))
}

func (r *Router) sendError(lv *LiveViewSession, msg *protocol.Message, err error) {
	r.send(lv, protocol.ErrorReply(msg.Ref, msg.Topic, err.Error()).WithJoinRef(msg.JoinRef))
}

func (r *Router) send(lv *LiveViewSession, msg *protocol.Message) {
	if err := lv.Transport.Send(msg); err != nil {
		r.metrics.RecordError("send")
		return
	}
	r.metrics.MessageSent(msg.Event)
}

// disconnect terminates the component and releases the connection. It runs
// once per session.
func (r *Router) disconnect(lv *LiveViewSession, reason core.TerminateReason) {
	lv.closeOnce.Do(func() {
		ctx := logging.ContextWithLogger(context.Background(), r.log)
		if err := r.guard(ctx, "terminate", func(ctx context.Context) error {
			return lv.Component.Terminate(ctx, reason)
		}); err != nil {
			r.log.Warn("terminate failed", logging.String("socket", lv.SocketID), logging.Err(err))
		}

		r.sessions.Remove(lv.ID)
		r.sockets.Remove(lv.SocketID)
		lv.Socket.Close()
		r.metrics.ConnectionClosed()

		r.log.Debug("live session closed",
			logging.String("socket", lv.SocketID),
			logging.String("reason", reason.String()),
			logging.Duration("lifetime", time.Since(lv.CreatedAt)))
	})
}
