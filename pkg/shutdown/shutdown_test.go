package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdown_RunsHooksByPriority(t *testing.T) {
	h := NewHandler(DefaultConfig())

	var order []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}
	h.RegisterFunc("store", PriorityStore, record("store"))
	h.RegisterFunc("http", PriorityHTTP, record("http"))
	h.RegisterFunc("live", PriorityLive, record("live"))

	require.NoError(t, h.Shutdown())
	assert.Equal(t, []string{"http", "live", "store"}, order)
	assert.True(t, h.IsClosed())
	assert.ErrorIs(t, h.Shutdown(), ErrAlreadyClosed)
}

func TestShutdown_CollectsErrors(t *testing.T) {
	h := NewHandler(DefaultConfig())
	boom := errors.New("boom")
	ran := false

	h.RegisterFunc("failing", PriorityHTTP, func(context.Context) error { return boom })
	h.RegisterFunc("after", PriorityStore, func(context.Context) error { ran = true; return nil })

	err := h.Shutdown()
	assert.ErrorIs(t, err, boom)
	assert.True(t, ran)
}

func TestShutdown_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeout = 10 * time.Millisecond
	h := NewHandler(cfg)

	h.RegisterFunc("slow", PriorityHTTP, func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	assert.ErrorIs(t, h.Shutdown(), ErrShutdownTimeout)
}

func TestWait_ContextAndFatal(t *testing.T) {
	h := NewHandler(DefaultConfig())
	ran := false
	h.RegisterFunc("http", PriorityHTTP, func(context.Context) error { ran = true; return nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, h.Wait(ctx, nil))
	assert.True(t, ran)

	h2 := NewHandler(DefaultConfig())
	fatal := make(chan error, 1)
	listen := errors.New("address in use")
	fatal <- listen
	assert.ErrorIs(t, h2.Wait(context.Background(), fatal), listen)
}

func TestCloseableHook(t *testing.T) {
	c := &closer{}
	hook := CloseableHook("store", PriorityStore, c)
	require.NoError(t, hook.Fn(context.Background()))
	assert.True(t, c.closed)
}

type closer struct{ closed bool }

func (c *closer) Close() error {
	c.closed = true
	return nil
}
