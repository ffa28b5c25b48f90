// Package portfolio is the live portfolio page. It renders the content and
// routes client events and deferred messages to the behavior controllers,
// pushing the commands they return.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/samber/lo"

	"github.com/gabrielmiguelok/golivefolio/internal/config"
	"github.com/gabrielmiguelok/golivefolio/internal/content"
	"github.com/gabrielmiguelok/golivefolio/internal/website"
	"github.com/gabrielmiguelok/golivefolio/internal/website/components"
	"github.com/gabrielmiguelok/golivefolio/pkg/contact"
	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/effects"
	"github.com/gabrielmiguelok/golivefolio/pkg/filter"
	"github.com/gabrielmiguelok/golivefolio/pkg/logging"
	"github.com/gabrielmiguelok/golivefolio/pkg/metrics"
	"github.com/gabrielmiguelok/golivefolio/pkg/nav"
	"github.com/gabrielmiguelok/golivefolio/pkg/reveal"
	"github.com/gabrielmiguelok/golivefolio/pkg/scroll"
	"github.com/gabrielmiguelok/golivefolio/pkg/theme"
	"github.com/gabrielmiguelok/golivefolio/pkg/typing"
	"github.com/gabrielmiguelok/golivefolio/pkg/viewport"
)

// VisitorCookie identifies a browser across visits.
const VisitorCookie = "visitor"

// Client events.
const (
	EventThemeToggle = "theme:toggle"
	EventNavToggle   = "nav:toggle"
	EventNavLink     = "nav:link"
	EventScroll      = "scroll"
	EventLayout      = "layout"
	EventFilter      = "filter"
	EventFormFocus   = "form:focus"
	EventFormBlur    = "form:blur"
	EventFormInput   = "form:input"
	EventFormSubmit  = "form:submit"
	EventAnchor      = "anchor"
	EventLoaded      = "loaded"
)

// ErrUnknownEvent is returned for events the page does not bind.
var ErrUnknownEvent = errors.New("unknown event")

// Deps are shared by every page instance.
type Deps struct {
	Content  *content.Portfolio
	Themes   *theme.Repository
	Features config.FeatureConfig
	Metrics  *metrics.Metrics
	Logger   logging.Logger
	// Seed returns the particle randomness; nil draws a fresh seed
	Seed func() rand.Source
	// Now dates the footer; nil means time.Now
	Now func() time.Time
}

// layout is the geometry last reported by the client.
type layout struct {
	sections []viewport.Rect
	elements []viewport.Rect
	anchors  []viewport.Rect
	navbar   float64
	view     viewport.Viewport
}

// Page is the portfolio LiveView. Controllers of disabled features are nil
// and ignore every call.
type Page struct {
	core.BaseComponent

	deps    Deps
	log     logging.Logger
	visitor string

	theme     *theme.Controller
	nav       *nav.Controller
	typing    *typing.Animator
	reveal    *reveal.Animator
	bars      *reveal.SkillBars
	image     *reveal.LazyImage
	filter    *filter.Filter
	contact   *contact.Controller
	scroller  *scroll.Scroller
	particles *effects.Particles
	loader    *effects.Loader

	observe *scroll.Debouncer[viewport.Viewport]
	layout  layout
}

// NewFactory returns a constructor suitable for router.Live.
func NewFactory(deps Deps) func() core.Component {
	return func() core.Component { return New(deps) }
}

// New creates an unmounted page.
func New(deps Deps) *Page {
	if deps.Logger == nil {
		deps.Logger = logging.NopLogger{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Seed == nil {
		deps.Seed = func() rand.Source { return rand.NewPCG(rand.Uint64(), rand.Uint64()) }
	}
	return &Page{deps: deps, log: deps.Logger}
}

// Name implements core.Component.
func (p *Page) Name() string { return "portfolio" }

// Mount builds the controllers and initializes them in page order: theme,
// navigation, typing, reveal, skill bars, filter, contact form, smooth
// scrolling. Particles and the loader run on their own schedule.
func (p *Page) Mount(ctx context.Context, params core.Params, session core.Session) error {
	if p.deps.Content == nil {
		return errors.New("portfolio: no content")
	}
	p.visitor = session.Cookie(VisitorCookie)
	p.build()

	var fx core.Effects
	fx.Merge(p.theme.Initialize(ctx, params.Get("theme")))
	fx.Merge(p.typing.Start())
	fx.Merge(p.reveal.Initialize(p.revealMembers()))
	fx.Merge(p.particles.Schedule())

	if s := p.Socket(); s != nil {
		p.log.Debug("portfolio mounted",
			logging.String("socket", s.ID()),
			logging.String("visitor", p.visitor),
			logging.String("theme", string(p.theme.Preference())))
	}
	return p.Apply(fx)
}

func (p *Page) build() {
	f := p.deps.Features
	c := p.deps.Content

	p.observe = scroll.NewDebouncer[viewport.Viewport]("viewport", scroll.DebounceWait)
	p.loader = effects.NewLoader()
	p.image = reveal.NewLazyImage(components.ProfileImageID)

	if f.Theme {
		p.theme = theme.New(p.deps.Themes, p.visitor, p.log)
	}
	if f.Navigation {
		p.nav = nav.New()
	}
	if f.Typing {
		p.typing = typing.New(c.Owner.Name)
	}
	if f.Reveal {
		p.reveal = reveal.New(reveal.DefaultGroups)
	}
	if f.SkillBars {
		p.bars = reveal.NewSkillBars(p.skillBars())
	}
	if f.Filter {
		p.filter = filter.New(lo.Map(c.Projects, func(pr content.Project, _ int) filter.Card {
			return filter.Card{ID: components.ProjectCardID(pr.ID), Category: pr.Category}
		}))
	}
	if f.ContactForm {
		p.contact = contact.New(contact.NewNotifier(), p.log)
	}
	if f.SmoothScroll {
		p.scroller = scroll.New()
	}
	if f.Particles {
		p.particles = effects.NewParticles(p.deps.Seed())
	}
}

// revealMembers lists the animated elements of each reveal group.
func (p *Page) revealMembers() map[string][]string {
	c := p.deps.Content
	members := map[string][]string{
		".about-content":    {components.AboutContentID},
		".highlight-item":   lo.Times(len(c.About.Highlights), components.HighlightID),
		".skill-category":   lo.Times(len(c.Skills), components.SkillCategoryID),
		".achievement-card": lo.Times(len(c.Achievements), components.AchievementID),
		".contact-item":     components.ContactItemIDs(c.Owner),
		".project-card": lo.Map(c.Projects, func(pr content.Project, _ int) string {
			return components.ProjectCardID(pr.ID)
		}),
	}
	if p.deps.Features.ContactForm {
		members[".contact-form-wrapper"] = []string{components.ContactFormWrapperID}
	}
	return members
}

func (p *Page) skillBars() []reveal.Bar {
	var bars []reveal.Bar
	for i, cat := range p.deps.Content.Skills {
		for j, s := range cat.Skills {
			bars = append(bars, reveal.Bar{ID: components.SkillBarID(i, j), Level: s.Level})
		}
	}
	return bars
}

// HandleEvent routes a client event to its controller.
func (p *Page) HandleEvent(ctx context.Context, event string, payload map[string]any) error {
	var fx core.Effects

	switch event {
	case EventThemeToggle:
		fx = p.theme.Toggle(ctx)
		if p.theme != nil {
			p.deps.Metrics.ThemeToggled(string(p.theme.Preference()))
		}

	case EventNavToggle:
		fx = p.nav.ToggleMobileMenu()

	case EventNavLink:
		fx = p.nav.CloseMobileMenu()

	case EventScroll:
		p.layout.view = viewport.Viewport{
			ScrollY: num(payload, "y"),
			Height:  lo.Ternary(num(payload, "vh") > 0, num(payload, "vh"), p.layout.view.Height),
		}
		fx = p.nav.Scroll(p.layout.view.ScrollY, p.layout.sections)
		fx.Merge(p.observe.Trigger(p.layout.view))

	case EventLayout:
		p.layout = layout{
			sections: rects(payload, "sections"),
			elements: rects(payload, "elements"),
			anchors:  rects(payload, "anchors"),
			navbar:   num(payload, "navbar"),
			view:     viewport.Viewport{ScrollY: num(payload, "y"), Height: num(payload, "vh")},
		}
		fx = p.nav.Scroll(p.layout.view.ScrollY, p.layout.sections)
		fx.Merge(p.observePass(p.layout.view))

	case EventFilter:
		value := str(payload, "filter")
		if value == "" {
			value = filter.All
		}
		// values arrive from the client; only known ones become metric labels
		if p.filter.Known(value) {
			fx = p.filter.Select(value)
			p.deps.Metrics.FilterSelected(value)
		}

	case EventFormFocus:
		fx = p.contact.Focus(str(payload, "field"))

	case EventFormBlur:
		fx = p.contact.Blur(str(payload, "field"), str(payload, "value"))

	case EventFormInput:
		fx = p.contact.Input(str(payload, "field"), str(payload, "value"))

	case EventFormSubmit:
		fx = p.submit(payload)

	case EventAnchor:
		targets := lo.Flatten([][]viewport.Rect{p.layout.sections, p.layout.anchors})
		fx = p.scroller.ScrollToAnchor(str(payload, "href"), targets, p.layout.navbar)

	case EventLoaded:
		fx = p.loader.MarkLoaded()

	default:
		return fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}

	return p.Apply(fx)
}

func (p *Page) submit(payload map[string]any) core.Effects {
	if p.contact == nil {
		return core.Effects{}
	}
	busy := p.contact.Sending()
	fx := p.contact.Submit(contact.Draft{
		Name:    str(payload, contact.Name),
		Email:   str(payload, contact.Email),
		Message: str(payload, contact.Message),
	})
	switch {
	case busy:
		p.deps.Metrics.ContactSubmitted("ignored")
	case p.contact.Sending():
		p.deps.Metrics.ContactSubmitted("accepted")
	default:
		p.deps.Metrics.ContactSubmitted("invalid")
	}
	return fx
}

// observePass checks every observer against v.
func (p *Page) observePass(v viewport.Viewport) core.Effects {
	fx := p.reveal.Observe(v, p.layout.elements)
	fx.Merge(p.bars.Observe(v, p.layout.elements))
	fx.Merge(p.image.Observe(v, p.layout.elements))
	return fx
}

// HandleInfo hands a deferred message to the controller that scheduled it.
func (p *Page) HandleInfo(ctx context.Context, msg any) error {
	if v, due, ok := p.observe.Fired(msg); ok {
		if due {
			return p.Apply(p.observePass(v))
		}
		return nil
	}

	handlers := []func(any) (core.Effects, bool){
		p.theme.HandleInfo,
		p.typing.HandleInfo,
		p.bars.HandleInfo,
		p.filter.HandleInfo,
		p.contact.HandleInfo,
		p.particles.HandleInfo,
	}
	for _, h := range handlers {
		if fx, ok := h(msg); ok {
			return p.Apply(fx)
		}
	}

	p.log.Debug("unhandled info message", logging.Any("msg", msg))
	return nil
}

// Render renders the whole document. Only the data-slot regions change
// after mount; everything else is driven by commands.
func (p *Page) Render(ctx context.Context) core.Renderer {
	doc := p.document()
	return core.RendererFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, doc)
		return err
	})
}

// Terminate implements core.Component.
func (p *Page) Terminate(ctx context.Context, reason core.TerminateReason) error {
	if s := p.Socket(); s != nil {
		p.log.Debug("portfolio closed",
			logging.String("socket", s.ID()),
			logging.String("reason", reason.String()),
			logging.Duration("connected", p.deps.Now().Sub(s.ConnectedAt())))
	}
	return nil
}

func (p *Page) document() string {
	c := p.deps.Content
	pref := p.theme.Preference()

	cfg := website.DefaultPageConfig()
	cfg.Title = c.Owner.Name
	if c.Owner.Title != "" {
		cfg.Title += " | " + c.Owner.Title
	}
	cfg.Description = c.Owner.Tagline
	cfg.Author = c.Owner.Name
	cfg.OGImage = c.Owner.Image
	cfg.Keywords = lo.FlatMap(c.Skills, func(sc content.SkillCategory, _ int) []string {
		return lo.Map(sc.Skills, func(s content.Skill, _ int) string { return s.Name })
	})
	cfg.Scheme = string(pref)
	cfg.Favicon = pref.Favicon()
	if pref == theme.Dark {
		cfg.ThemeColor = website.DarkColors["primary"]
	}

	visible := len(c.Projects)
	if p.filter != nil {
		visible = len(p.filter.Visible())
	}
	var status string
	if b, ok := p.contact.Notifier().Current(); ok {
		status = b.Message
	}

	body := components.RenderNavbar(components.NavbarOptions{
		Logo:  c.Owner.Name,
		Links: components.DefaultLinks(),
		Icon:  pref.Icon(),
	}) +
		`<main id="main-content">` + "\n" +
		components.RenderHero(c.Owner) +
		components.RenderAbout(c.About) +
		components.RenderSkills(c.Skills) +
		components.RenderProjects(components.ProjectsOptions{
			Projects:   c.Projects,
			Categories: c.Categories(),
			Active:     p.filter.Active(),
			Visible:    visible,
		}) +
		components.RenderAchievements(c.Achievements) +
		components.RenderContact(components.ContactOptions{
			Owner:    c.Owner,
			ShowForm: p.deps.Features.ContactForm,
			Status:   status,
		}) +
		`</main>` + "\n" +
		components.RenderFooter(components.FooterOptions{Owner: c.Owner, Year: p.deps.Now().Year()})

	return website.RenderDocument(cfg, "", body)
}
