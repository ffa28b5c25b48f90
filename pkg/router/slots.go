package router

import (
	"hash/fnv"
	"strings"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
)

// fullKey holds the hash of the whole view in a session's slot hashes.
const fullKey = ""

// extractSlots returns the content of every data-slot element in one pass.
// Slots whose content contains markup are returned in htmlSlots.
func extractSlots(html string) (textSlots, htmlSlots map[string]string) {
	textSlots = make(map[string]string)
	htmlSlots = make(map[string]string)

	const marker = `data-slot="`
	htmlLen := len(html)
	pos := 0

	for pos < htmlLen {
		idx := strings.Index(html[pos:], marker)
		if idx == -1 {
			break
		}
		slotStart := pos + idx + len(marker)

		slotEnd := strings.IndexByte(html[slotStart:], '"')
		if slotEnd == -1 {
			break
		}
		slotID := html[slotStart : slotStart+slotEnd]

		tagStart := pos + idx
		for tagStart > 0 && html[tagStart] != '<' {
			tagStart--
		}
		tagNameEnd := tagStart + 1
		for tagNameEnd < htmlLen && !strings.ContainsRune(" \t\n/>", rune(html[tagNameEnd])) {
			tagNameEnd++
		}
		tagName := html[tagStart+1 : tagNameEnd]

		closeAngle := strings.IndexByte(html[slotStart+slotEnd:], '>')
		if closeAngle == -1 {
			break
		}
		contentStart := slotStart + slotEnd + closeAngle + 1

		contentEnd, next := matchClose(html, tagName, contentStart)
		if contentEnd != -1 {
			content := strings.TrimSpace(html[contentStart:contentEnd])
			if strings.ContainsAny(content, "<>") {
				htmlSlots[slotID] = content
			} else {
				textSlots[slotID] = content
			}
		}
		pos = next
	}

	return textSlots, htmlSlots
}

// matchClose finds the close tag balancing an open tagName whose content
// starts at from. It returns the start of the close tag (-1 when missing)
// and the position to resume scanning.
func matchClose(html, tagName string, from int) (end, next int) {
	openTag := "<" + tagName
	closeTag := "</" + tagName
	htmlLen := len(html)

	depth := 1
	pos := from
	for pos < htmlLen {
		nextClose := strings.Index(html[pos:], closeTag)
		if nextClose == -1 {
			return -1, htmlLen
		}
		nextClose += pos

		nextOpen := strings.Index(html[pos:], openTag)
		if nextOpen != -1 && pos+nextOpen < nextClose {
			after := pos + nextOpen + len(openTag)
			if after < htmlLen && strings.ContainsRune(" \t\n/>", rune(html[after])) {
				depth++
			}
			pos = after
			continue
		}

		depth--
		if depth == 0 {
			return nextClose, nextClose + len(closeTag)
		}
		pos = nextClose + len(closeTag)
	}
	return -1, htmlLen
}

func hashSlot(content string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(content))
	return h.Sum64()
}

// slotHashes hashes the slots of html, plus the whole view under fullKey.
func slotHashes(html string) map[string]uint64 {
	textSlots, htmlSlots := extractSlots(html)
	hashes := make(map[string]uint64, len(textSlots)+len(htmlSlots)+1)
	for id, c := range textSlots {
		hashes[id] = hashSlot(c)
	}
	for id, c := range htmlSlots {
		hashes[id] = hashSlot(c)
	}
	hashes[fullKey] = hashSlot(html)
	return hashes
}

// buildDiff compares html with the hashes last sent and returns the slots
// that changed together with the new hashes. A view without slots is sent
// whole, and only when it changed.
func buildDiff(html string, prev map[string]uint64) (*core.DiffPayload, map[string]uint64) {
	payload := &core.DiffPayload{
		Slots:     make(map[string]string),
		HTMLSlots: make(map[string]string),
	}

	textSlots, htmlSlots := extractSlots(html)
	next := make(map[string]uint64, len(textSlots)+len(htmlSlots)+1)

	for id, content := range textSlots {
		h := hashSlot(content)
		next[id] = h
		if old, ok := prev[id]; !ok || old != h {
			payload.Slots[id] = content
		}
	}
	for id, content := range htmlSlots {
		h := hashSlot(content)
		next[id] = h
		if old, ok := prev[id]; !ok || old != h {
			payload.HTMLSlots[id] = content
		}
	}

	full := hashSlot(html)
	next[fullKey] = full
	if len(textSlots) == 0 && len(htmlSlots) == 0 {
		if old, ok := prev[fullKey]; !ok || old != full {
			payload.Full = html
		}
	}

	return payload, next
}
