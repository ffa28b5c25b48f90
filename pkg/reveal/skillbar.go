package reveal

import (
	"strconv"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/gabrielmiguelok/golivefolio/pkg/viewport"
	"github.com/samber/lo"
)

// FillDelay separates a bar's entry from its width transition.
const FillDelay = 200 * time.Millisecond

// SkillBarOptions of the skill bar observer.
var SkillBarOptions = viewport.Options{Threshold: 0.5}

// Bar is a skill progress bar with its target percentage.
type Bar struct {
	ID    string
	Level int
}

type fill struct{ id string }

// SkillBars fills each bar once, the first time it is half visible.
// A nil SkillBars ignores every call.
type SkillBars struct {
	levels map[string]int
	filled map[string]int
	obs    *viewport.Observer
}

// NewSkillBars observes bars.
func NewSkillBars(bars []Bar) *SkillBars {
	s := &SkillBars{
		levels: lo.SliceToMap(bars, func(b Bar) (string, int) { return b.ID, b.Level }),
		filled: make(map[string]int),
		obs:    viewport.NewObserver(SkillBarOptions),
	}
	s.obs.Observe(lo.Map(bars, func(b Bar, _ int) string { return b.ID })...)
	return s
}

// Observing reports whether bar id is still watched.
func (s *SkillBars) Observing(id string) bool {
	return s != nil && s.obs.Observing(id)
}

// Fills returns how many times bar id has been filled.
func (s *SkillBars) Fills(id string) int {
	if s == nil {
		return 0
	}
	return s.filled[id]
}

// Observe schedules the fill of bars that entered the viewport and stops
// watching them.
func (s *SkillBars) Observe(v viewport.Viewport, rects []viewport.Rect) core.Effects {
	var fx core.Effects
	if s == nil {
		return fx
	}
	for _, id := range s.obs.Check(v, rects) {
		s.obs.Unobserve(id)
		fx.After(FillDelay, fill{id: id})
	}
	return fx
}

// HandleInfo applies a scheduled fill.
func (s *SkillBars) HandleInfo(msg any) (core.Effects, bool) {
	var fx core.Effects
	f, ok := msg.(fill)
	if !ok {
		return fx, false
	}
	if s == nil {
		return fx, true
	}
	s.filled[f.id]++
	fx.Do(js.SetStyle(js.ID(f.id), "width", strconv.Itoa(s.levels[f.id])+"%"))
	return fx, true
}
