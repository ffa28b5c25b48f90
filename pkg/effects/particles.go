// Package effects holds the decorative hero particles and the page loader.
package effects

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
)

const (
	ParticleCount     = 30
	SpawnDelay        = 500 * time.Millisecond
	ContainerSelector = ".hero-particles"
	ParticleClass     = "particle"
	Animation         = "float-particle"
)

// Particle is one floating dot. Durations and delays are in seconds,
// positions in percent of the container.
type Particle struct {
	Duration float64
	Left     float64
	Top      float64
	Delay    float64
}

// RandomParticle draws a particle from r: duration in [3,7), left and top in
// [0,100), delay in [0,2).
func RandomParticle(r *rand.Rand) Particle {
	return Particle{
		Duration: 3 + r.Float64()*4,
		Left:     r.Float64() * 100,
		Top:      r.Float64() * 100,
		Delay:    r.Float64() * 2,
	}
}

// Style returns the particle's inline style.
func (p Particle) Style() string {
	return fmt.Sprintf("position: absolute; width: 2px; height: 2px; "+
		"background: var(--color-primary); border-radius: 50%%; opacity: 0.6; "+
		"animation: %s %.3fs infinite linear; left: %.3f%%; top: %.3f%%; animation-delay: %.3fs;",
		Animation, p.Duration, p.Left, p.Top, p.Delay)
}

// Markup renders the particle element.
func (p Particle) Markup() string {
	return `<div class="` + ParticleClass + `" style="` + p.Style() + `"></div>`
}

type spawn struct{}

// Particles spawns the hero particles once, SpawnDelay after Schedule.
// A nil Particles ignores every call.
type Particles struct {
	rng     *rand.Rand
	spawned []Particle
}

// NewParticles draws positions from src, or from a randomly seeded source
// when src is nil.
func NewParticles(src rand.Source) *Particles {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Particles{rng: rand.New(src)}
}

// Spawned returns the particles added to the page.
func (p *Particles) Spawned() []Particle {
	if p == nil {
		return nil
	}
	return p.spawned
}

// Schedule arranges the spawn.
func (p *Particles) Schedule() core.Effects {
	var fx core.Effects
	if p == nil || p.spawned != nil {
		return fx
	}
	fx.After(SpawnDelay, spawn{})
	return fx
}

// HandleInfo adds the particles to the container.
func (p *Particles) HandleInfo(msg any) (core.Effects, bool) {
	var fx core.Effects
	if _, ok := msg.(spawn); !ok {
		return fx, false
	}
	if p == nil || p.spawned != nil {
		return fx, true
	}

	p.spawned = make([]Particle, ParticleCount)
	var b strings.Builder
	for i := range p.spawned {
		p.spawned[i] = RandomParticle(p.rng)
		b.WriteString(p.spawned[i].Markup())
	}
	fx.Do(js.AppendHTML(ContainerSelector, b.String()))
	return fx, true
}
