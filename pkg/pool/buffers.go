// Package pool reuses render buffers across page renders.
package pool

import (
	"bytes"
	"context"
	"sync"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
)

// MaxPooledSize is the largest buffer capacity kept for reuse. A full
// portfolio page renders well below it.
const MaxPooledSize = 256 * 1024

var buffers = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves a buffer from the pool, resetting it for use.
func GetBuffer() *bytes.Buffer {
	buf := buffers.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > MaxPooledSize {
		return
	}
	buffers.Put(buf)
}

// RenderString renders r into a pooled buffer and returns the markup.
func RenderString(ctx context.Context, r core.Renderer) (string, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := r.Render(ctx, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
