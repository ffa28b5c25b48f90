package portfolio

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielmiguelok/golivefolio/internal/config"
	"github.com/gabrielmiguelok/golivefolio/internal/content"
	"github.com/gabrielmiguelok/golivefolio/pkg/contact"
	"github.com/gabrielmiguelok/golivefolio/pkg/core"
	"github.com/gabrielmiguelok/golivefolio/pkg/effects"
	"github.com/gabrielmiguelok/golivefolio/pkg/filter"
	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/gabrielmiguelok/golivefolio/pkg/metrics"
	"github.com/gabrielmiguelok/golivefolio/pkg/nav"
	"github.com/gabrielmiguelok/golivefolio/pkg/reveal"
	"github.com/gabrielmiguelok/golivefolio/pkg/state"
	"github.com/gabrielmiguelok/golivefolio/pkg/theme"
	"github.com/gabrielmiguelok/golivefolio/pkg/typing"
	lvtest "github.com/gabrielmiguelok/golivefolio/pkg/testing"
)

const visitor = "v1"

func newDeps(t *testing.T) Deps {
	t.Helper()
	store := state.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	c, err := content.Default()
	require.NoError(t, err)

	return Deps{
		Content:  c,
		Themes:   theme.NewRepository(store),
		Features: config.DefaultConfig().Features,
		Metrics:  metrics.New("test"),
		Seed:     func() rand.Source { return rand.NewPCG(1, 2) },
		Now:      func() time.Time { return lvtest.Epoch },
	}
}

func mount(t *testing.T, deps Deps) (*Page, *lvtest.LiveViewTest) {
	t.Helper()
	page := New(deps)
	lvt := lvtest.Mount(t, page,
		lvtest.WithSession(core.Session{"cookie:" + VisitorCookie: visitor}))
	return page, lvt
}

// pageLayout places every section 600px below the previous one with the
// first skill bar inside the skills section.
func pageLayout(y, vh float64) map[string]any {
	sections := []any{}
	for i, id := range []string{"home", "about", "skills", "projects", "achievements", "contact"} {
		sections = append(sections, map[string]any{"id": id, "top": float64(i * 600), "height": 600.0})
	}
	return map[string]any{
		"sections": sections,
		"elements": []any{
			map[string]any{"id": "skill-0-0", "top": 1400.0, "height": 8.0},
			map[string]any{"id": "about-content", "top": 700.0, "height": 300.0},
			map[string]any{"height": 10.0},
		},
		"anchors": []any{
			map[string]any{"id": "main-content", "top": 70.0, "height": 3600.0},
		},
		"navbar": 70.0,
		"y":      y,
		"vh":     vh,
	}
}

func TestPage_MountInitializesControllers(t *testing.T) {
	_, lvt := mount(t, newDeps(t))

	cmds := lvt.TakeCommands()
	assert.Contains(t, cmds, js.SetAttr("", theme.Attribute, string(theme.Light)))
	assert.Contains(t, cmds, js.Store(theme.StorageKey, string(theme.Light)))
	assert.Contains(t, cmds, js.SetText(js.ID(typing.ElementID), ""))
	assert.Contains(t, cmds, js.AddClass(js.ID("about-content"), "fade-in"))
	assert.Contains(t, cmds, js.AddClass(js.ID("project-task-manager"), "fade-in"))

	lvt.AssertText(`data-color-scheme="light"`).
		AssertText(`<span id="typing-text" class="typing-text">Dev Charan Sai P</span>`).
		AssertText(`id="contact-form"`).
		AssertText(`&copy; 2024 Dev Charan Sai P`)
}

func TestPage_TypesOwnerName(t *testing.T) {
	_, lvt := mount(t, newDeps(t))
	lvt.TakeCommands()

	lvt.Advance(typing.StartDelay + 16*typing.TickInterval)
	texts := lvt.TakeCommands().Filter(js.OpSetText)
	require.Len(t, texts, 16)
	assert.Equal(t, "D", texts[0].Value)
	assert.Equal(t, "Dev Charan Sai P", texts[15].Value)

	lvt.Advance(typing.TickInterval + typing.CaretDelay)
	assert.Contains(t, lvt.TakeCommands(), js.SetStyle(js.ID(typing.ElementID), "border-right", "none"))
}

func TestPage_SpawnsParticlesOnce(t *testing.T) {
	_, lvt := mount(t, newDeps(t))

	lvt.Advance(effects.SpawnDelay)
	assert.Len(t, lvt.Commands().Filter(js.OpAppendHTML), 1)
	lvt.AssertCommand(js.OpAppendHTML, effects.ContainerSelector)

	lvt.Advance(time.Minute)
	assert.Len(t, lvt.Commands().Filter(js.OpAppendHTML), 1)
}

func TestPage_ThemeToggle(t *testing.T) {
	deps := newDeps(t)
	_, lvt := mount(t, deps)
	lvt.TakeCommands()

	lvt.Click(EventThemeToggle)
	cmds := lvt.TakeCommands()
	assert.Contains(t, cmds, js.SetAttr("", theme.Attribute, string(theme.Dark)))
	assert.Contains(t, cmds, js.Store(theme.StorageKey, string(theme.Dark)))
	assert.Contains(t, cmds, js.SetFavicon(theme.Dark.Favicon()))
	lvt.AssertText(`data-color-scheme="dark"`)

	stored, found, err := deps.Themes.Load(context.Background(), visitor)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, theme.Dark, stored)

	lvt.Click(EventThemeToggle)
	assert.Contains(t, lvt.TakeCommands(), js.SetAttr("", theme.Attribute, string(theme.Light)))
	lvt.AssertText(`data-color-scheme="light"`)

	assert.Equal(t, map[string]float64{"dark": 1, "light": 1}, deps.Metrics.ThemeToggles.Values())
}

func TestPage_StoredThemeWinsOverClient(t *testing.T) {
	deps := newDeps(t)
	require.NoError(t, deps.Themes.Save(context.Background(), visitor, theme.Dark))

	lvt := lvtest.Mount(t, New(deps),
		lvtest.WithSession(core.Session{"cookie:" + VisitorCookie: visitor}),
		lvtest.WithParams(core.Params{"theme": "light"}))

	assert.Contains(t, lvt.Commands(), js.SetAttr("", theme.Attribute, string(theme.Dark)))
	lvt.AssertText(`data-color-scheme="dark"`)
}

func TestPage_ClientThemeWithoutVisitorRecord(t *testing.T) {
	lvt := lvtest.Mount(t, New(newDeps(t)), lvtest.WithParams(core.Params{"theme": "dark"}))
	assert.Contains(t, lvt.Commands(), js.SetAttr("", theme.Attribute, string(theme.Dark)))
}

func TestPage_MobileMenu(t *testing.T) {
	_, lvt := mount(t, newDeps(t))
	lvt.TakeCommands()

	lvt.Click(EventNavToggle)
	assert.Contains(t, lvt.TakeCommands(), js.AddClass(js.ID(nav.MenuID), nav.ActiveClass))

	lvt.Click(EventNavLink)
	assert.Contains(t, lvt.TakeCommands(), js.RemoveClass(js.ID(nav.MenuID), nav.ActiveClass))
}

func TestPage_ScrollPastSectionsClearsNavLinks(t *testing.T) {
	page, lvt := mount(t, newDeps(t))
	lvt.Event(EventLayout, pageLayout(700, 800))
	assert.Equal(t, "about", page.nav.Active())
	lvt.TakeCommands()

	lvt.Event(EventScroll, map[string]any{"y": 5000.0})
	cmds := lvt.TakeCommands()
	assert.Contains(t, cmds, js.RemoveClass(nav.LinkSelector, nav.ActiveClass))
	assert.Empty(t, lo.Filter(cmds.Filter(js.OpAddClass), func(c js.Command, _ int) bool {
		return c.Name == nav.ActiveClass && strings.HasPrefix(c.Target, nav.LinkSelector)
	}))
	assert.Equal(t, "", page.nav.Active())
}

func TestPage_ScrollMarksSectionAndFillsBarsOnce(t *testing.T) {
	page, lvt := mount(t, newDeps(t))
	lvt.TakeCommands()

	lvt.Event(EventLayout, pageLayout(0, 800))
	cmds := lvt.TakeCommands()
	assert.Contains(t, cmds, js.AddClass(nav.LinkSelectorFor("home"), nav.ActiveClass))
	assert.Contains(t, cmds, js.AddClass(js.ID("about-content"), reveal.VisibleClass))
	assert.True(t, page.bars.Observing("skill-0-0"))

	lvt.Event(EventScroll, map[string]any{"y": 1000.0, "vh": 800.0})
	cmds = lvt.TakeCommands()
	assert.Contains(t, cmds, js.AddClass(nav.LinkSelectorFor("about"), nav.ActiveClass))
	assert.Contains(t, cmds, js.SetStyle(js.ID(nav.NavbarID), "background", nav.Background(1000)))

	// the observe pass waits for the scroll to settle
	lvt.Event(EventScroll, map[string]any{"y": 1010.0})
	lvt.Advance(5 * time.Millisecond)
	assert.True(t, page.bars.Observing("skill-0-0"))

	lvt.Advance(10*time.Millisecond + reveal.FillDelay)
	assert.False(t, page.bars.Observing("skill-0-0"))
	assert.Contains(t, lvt.TakeCommands(), js.SetStyle(js.ID("skill-0-0"), "width", "90%"))

	lvt.Event(EventScroll, map[string]any{"y": 0.0})
	lvt.Event(EventScroll, map[string]any{"y": 1000.0})
	lvt.Advance(time.Second)
	assert.Equal(t, 1, page.bars.Fills("skill-0-0"))
}

func TestPage_FilterProjects(t *testing.T) {
	deps := newDeps(t)
	_, lvt := mount(t, deps)
	lvt.AssertText(`data-slot="project-count">4</span>`)
	lvt.TakeCommands()

	lvt.Click(EventFilter, lvtest.WithValue("filter", "web"))
	cmds := lvt.TakeCommands()
	assert.Contains(t, cmds, js.AddClass(filter.ButtonSelectorFor("web"), filter.ActiveClass))
	assert.Contains(t, cmds, js.SetStyle(js.ID("project-sales-insights"), "opacity", "0"))

	lvt.Advance(filter.HideDelay)
	cmds = lvt.TakeCommands()
	assert.Contains(t, cmds, js.SetStyle(js.ID("project-sales-insights"), "display", "none"))
	assert.Contains(t, cmds, js.SetStyle(js.ID("project-expense-tracker"), "display", "none"))
	assert.Contains(t, cmds, js.SetStyle(js.ID("project-weather-dashboard"), "opacity", "1"))
	assert.NotContains(t, cmds, js.SetStyle(js.ID("project-task-manager"), "display", "none"))
	lvt.AssertText(`data-slot="project-count">2</span>`)

	lvt.Click(EventFilter)
	lvt.AssertText(`class="filter-btn active" data-filter="all"`)
	assert.Equal(t, map[string]float64{"web": 1, "all": 1}, deps.Metrics.FilterSelects.Values())
}

func TestPage_FilterIgnoresUnknownValues(t *testing.T) {
	deps := newDeps(t)
	page, lvt := mount(t, deps)
	lvt.TakeCommands()

	for i := 0; i < 50; i++ {
		lvt.Click(EventFilter, lvtest.WithValue("filter", fmt.Sprintf("junk-%d", i)))
	}
	lvt.Click(EventFilter, lvtest.WithValue("filter", `web"]`))

	assert.Empty(t, lvt.TakeCommands())
	assert.Empty(t, deps.Metrics.FilterSelects.Values())
	assert.Equal(t, filter.All, page.filter.Active())
}

func TestPage_ContactFormRejectsBlankFields(t *testing.T) {
	deps := newDeps(t)
	_, lvt := mount(t, deps)
	lvt.TakeCommands()

	lvt.Submit(EventFormSubmit, map[string]string{"name": "Ada", "email": "", "message": "Hi"})
	cmds := lvt.TakeCommands()
	_, sending := cmds.Find(js.OpSetHTML, js.ID(contact.SubmitID))
	assert.False(t, sending)
	lvt.AssertCommand(js.OpAppendHTML, "body")
	lvt.AssertText(contact.ErrMissingFields.Error())

	assert.Equal(t, map[string]float64{"invalid": 1}, deps.Metrics.ContactSubmits.Values())
}

func TestPage_ContactFormSends(t *testing.T) {
	deps := newDeps(t)
	page, lvt := mount(t, deps)
	lvt.TakeCommands()

	lvt.Event(EventFormFocus, map[string]any{"field": "name"})
	assert.Contains(t, lvt.TakeCommands(), js.AddClass(js.ID(contact.GroupID("name")), contact.FocusedClass))

	lvt.Event(EventFormInput, map[string]any{"field": "name", "value": " Ada "})
	lvt.Event(EventFormInput, map[string]any{"field": "email", "value": "ada@example.com"})
	lvt.TakeCommands()

	draft := map[string]string{"name": " Ada ", "email": "ada@example.com", "message": "Hello"}
	lvt.Submit(EventFormSubmit, draft)
	assert.Contains(t, lvt.TakeCommands(), js.SetHTML(js.ID(contact.SubmitID), contact.SendingHTML))
	assert.True(t, page.contact.Sending())

	lvt.Submit(EventFormSubmit, draft)
	assert.Empty(t, lvt.TakeCommands())

	lvt.Advance(contact.SendDelay)
	cmds := lvt.TakeCommands()
	assert.Contains(t, cmds, js.ResetForm(js.ID(contact.FormID)))
	assert.Contains(t, cmds, js.SetHTML(js.ID(contact.SubmitID), contact.SubmitHTML))
	assert.False(t, page.contact.Sending())
	lvt.AssertText("Thank you for your message!")

	lvt.Advance(contact.DismissDelay + contact.RemoveDelay)
	lvt.AssertNoText("Thank you for your message!")

	assert.Equal(t, map[string]float64{"accepted": 1, "ignored": 1}, deps.Metrics.ContactSubmits.Values())

	// form.reset() falls back to the value attribute, which must end up blank
	value := map[string]string{}
	for _, c := range lvt.Commands().Filter(js.OpSetAttr) {
		if c.Name == "value" {
			value[c.Target] = c.Value
		}
	}
	for _, f := range contact.Fields {
		if v, ok := value[js.ID(f)]; ok {
			assert.Empty(t, v, f)
		}
	}
	assert.Contains(t, value, js.ID("name"))
}

func TestPage_AnchorScrollsBelowNavbar(t *testing.T) {
	_, lvt := mount(t, newDeps(t))
	lvt.Event(EventLayout, pageLayout(0, 800))
	lvt.TakeCommands()

	lvt.Click(EventAnchor, lvtest.WithValue("href", "#skills"))
	cmds := lvt.TakeCommands()
	assert.Equal(t, js.Commands{js.ScrollTo(1200 - 70), js.PushState("#skills")}, cmds)

	lvt.Click(EventAnchor, lvtest.WithValue("href", "#"))
	lvt.Click(EventAnchor, lvtest.WithValue("href", "#missing"))
	assert.Empty(t, lvt.TakeCommands())
}

func TestPage_SkipLinkScrollsToMain(t *testing.T) {
	_, lvt := mount(t, newDeps(t))
	lvt.AssertText(`href="#main-content"`)
	lvt.Event(EventLayout, pageLayout(1200, 800))
	lvt.TakeCommands()

	lvt.Click(EventAnchor, lvtest.WithValue("href", "#main-content"))
	assert.Equal(t, js.Commands{js.ScrollTo(0), js.PushState("#main-content")}, lvt.TakeCommands())
}

func TestPage_Loaded(t *testing.T) {
	_, lvt := mount(t, newDeps(t))
	lvt.Event(EventLoaded, nil)
	lvt.AssertCommand(js.OpAddClass, "body")
}

func TestPage_DisabledFeaturesAreInert(t *testing.T) {
	deps := newDeps(t)
	deps.Features = config.FeatureConfig{}
	page, lvt := mount(t, deps)

	assert.Empty(t, lvt.TakeCommands())
	lvt.AssertNoText(`id="contact-form"`).
		AssertText(`data-color-scheme="light"`)

	lvt.Click(EventThemeToggle).
		Click(EventNavToggle).
		Click(EventFilter, lvtest.WithValue("filter", "web")).
		Submit(EventFormSubmit, map[string]string{"name": "Ada", "email": "ada@example.com", "message": "Hi"}).
		Event(EventLayout, pageLayout(1000, 800)).
		Click(EventAnchor, lvtest.WithValue("href", "#skills"))
	lvt.Advance(time.Minute)

	for _, c := range lvt.TakeCommands() {
		assert.Contains(t, []string{js.ID("profile-img")}, c.Target, "unexpected command %s", c)
	}
	assert.Nil(t, page.theme)
	assert.Empty(t, deps.Metrics.ThemeToggles.Values())
}

func TestPage_UnknownEvent(t *testing.T) {
	page, lvt := mount(t, newDeps(t))

	err := page.HandleEvent(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)
	assert.Empty(t, lvt.Events())
}

func TestPage_MountRequiresContent(t *testing.T) {
	page := New(Deps{})
	err := page.Mount(context.Background(), core.Params{}, core.Session{})
	assert.Error(t, err)
}

func TestPage_StaticRender(t *testing.T) {
	deps := newDeps(t)
	require.NoError(t, deps.Themes.Save(context.Background(), visitor, theme.Dark))

	page := New(deps)
	require.NoError(t, page.Mount(context.Background(), core.Params{},
		core.Session{"cookie:" + VisitorCookie: visitor}))

	var sb strings.Builder
	require.NoError(t, page.Render(context.Background()).Render(context.Background(), &sb))
	assert.Contains(t, sb.String(), `data-color-scheme="dark"`)
	assert.Contains(t, sb.String(), `<script src="/_live/golivefolio.js" defer></script>`)
}
