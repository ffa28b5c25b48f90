package nav

import (
	"testing"

	"github.com/gabrielmiguelok/golivefolio/pkg/js"
	"github.com/gabrielmiguelok/golivefolio/pkg/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sections = []viewport.Rect{
	{ID: "home", Top: 0, Height: 700},
	{ID: "about", Top: 700, Height: 600},
	{ID: "skills", Top: 1300, Height: 500},
}

func TestActiveSection(t *testing.T) {
	tests := []struct {
		scrollY float64
		want    string
		ok      bool
	}{
		{0, "home", true},
		{599, "home", true},
		{600, "about", true},
		{1199, "about", true},
		{1699, "skills", true},
		{1700, "", false},
	}
	for _, tt := range tests {
		id, ok := ActiveSection(tt.scrollY, sections)
		assert.Equal(t, tt.ok, ok, "scrollY=%v", tt.scrollY)
		assert.Equal(t, tt.want, id, "scrollY=%v", tt.scrollY)
	}
}

func TestActiveSection_FirstMatchWins(t *testing.T) {
	overlapping := []viewport.Rect{
		{ID: "a", Top: 0, Height: 500},
		{ID: "b", Top: 100, Height: 500},
	}
	id, ok := ActiveSection(200, overlapping)
	require.True(t, ok)
	assert.Equal(t, "a", id)
}

func TestUpdateActiveNavLink(t *testing.T) {
	c := New()

	fx := c.UpdateActiveNavLink(650, sections)
	require.Len(t, fx.Commands, 2)
	assert.Equal(t, js.RemoveClass(".nav-link", "active"), fx.Commands[0])
	assert.Equal(t, js.AddClass(`.nav-link[href="#about"]`, "active"), fx.Commands[1])
	assert.Equal(t, "about", c.Active())

	// same section: nothing to change
	assert.True(t, c.UpdateActiveNavLink(700, sections).IsEmpty())

	// past every section: no link stays marked
	fx = c.UpdateActiveNavLink(5000, sections)
	assert.Equal(t, js.Commands{js.RemoveClass(".nav-link", "active")}, fx.Commands)
	assert.Equal(t, "", c.Active())
	assert.True(t, c.UpdateActiveNavLink(6000, sections).IsEmpty())

	// back inside a section
	fx = c.UpdateActiveNavLink(1400, sections)
	assert.Equal(t, js.AddClass(`.nav-link[href="#skills"]`, "active"), fx.Commands[1])
}

func TestUpdateNavbarBackground(t *testing.T) {
	c := New()

	fx := c.UpdateNavbarBackground(0)
	require.Len(t, fx.Commands, 1)
	assert.Equal(t, "rgba(var(--color-slate-900-rgb), 0.95)", fx.Commands[0].Value)

	assert.True(t, c.UpdateNavbarBackground(50).IsEmpty())

	fx = c.UpdateNavbarBackground(51)
	require.Len(t, fx.Commands, 1)
	assert.Equal(t, "rgba(var(--color-slate-900-rgb), 0.98)", fx.Commands[0].Value)
	assert.Equal(t, "#navbar", fx.Commands[0].Target)
}

func TestMobileMenu(t *testing.T) {
	c := New()

	fx := c.ToggleMobileMenu()
	assert.True(t, c.MenuOpen())
	assert.Equal(t, js.Commands{js.AddClass("#nav-toggle", "active"), js.AddClass("#nav-menu", "active")}, fx.Commands)

	c.ToggleMobileMenu()
	assert.False(t, c.MenuOpen())

	c.ToggleMobileMenu()
	fx = c.CloseMobileMenu()
	assert.False(t, c.MenuOpen())
	assert.Equal(t, js.Commands{js.RemoveClass("#nav-toggle", "active"), js.RemoveClass("#nav-menu", "active")}, fx.Commands)
}

func TestNilController(t *testing.T) {
	var c *Controller
	assert.True(t, c.ToggleMobileMenu().IsEmpty())
	assert.True(t, c.Scroll(100, sections).IsEmpty())
	assert.False(t, c.MenuOpen())
}
