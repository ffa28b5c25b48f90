package portfolio

import (
	"fmt"

	"github.com/gabrielmiguelok/golivefolio/pkg/viewport"
)

// Event payloads arrive decoded from JSON or msgpack, so numbers may be any
// numeric kind and objects are generic maps.

func str(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func num(payload map[string]any, key string) float64 {
	return toFloat(payload[key])
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}

// rects decodes a list of {id, top, height} objects. Entries without an id
// are skipped.
func rects(payload map[string]any, key string) []viewport.Rect {
	list, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	out := make([]viewport.Rect, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id := str(m, "id")
		if id == "" {
			continue
		}
		out = append(out, viewport.Rect{ID: id, Top: num(m, "top"), Height: num(m, "height")})
	}
	return out
}
