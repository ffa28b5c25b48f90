package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/gabrielmiguelok/golivefolio/internal/website"
)

// NavbarOptions configures the navbar component.
type NavbarOptions struct {
	// Logo is the logo text (usually the owner's name)
	Logo string
	// Links are the in-page navigation links
	Links []website.NavLink
	// Icon is the theme toggle icon class for the initial scheme
	Icon string
}

// DefaultLinks points at every section after the hero.
func DefaultLinks() []website.NavLink {
	return []website.NavLink{
		{Label: "Home", URL: "#home"},
		{Label: "About", URL: "#about"},
		{Label: "Skills", URL: "#skills"},
		{Label: "Projects", URL: "#projects"},
		{Label: "Achievements", URL: "#achievements"},
		{Label: "Contact", URL: "#contact"},
	}
}

// RenderNavbar generates the fixed navigation bar with the theme toggle and
// the mobile menu button.
func RenderNavbar(opts NavbarOptions) string {
	var sb strings.Builder

	sb.WriteString(`<a href="#main-content" class="skip-link">Skip to main content</a>`)
	sb.WriteString("\n")

	sb.WriteString(`<nav class="navbar" id="navbar" role="navigation" aria-label="Main navigation">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container nav-container">`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<a href="#home" class="nav-logo">%s</a>`, html.EscapeString(opts.Logo)))
	sb.WriteString("\n")

	sb.WriteString(`<ul class="nav-menu" id="nav-menu">`)
	sb.WriteString("\n")
	for _, link := range opts.Links {
		sb.WriteString(fmt.Sprintf(`<li><a href="%s" class="nav-link" lv-click="nav:link">%s</a></li>`,
			html.EscapeString(link.URL),
			html.EscapeString(link.Label)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</ul>`)
	sb.WriteString("\n")

	icon := opts.Icon
	if icon == "" {
		icon = "fas fa-moon"
	}
	sb.WriteString(`<div class="nav-actions">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<button type="button" id="theme-toggle" class="theme-toggle" lv-click="theme:toggle" aria-label="Toggle color scheme"><i id="theme-icon" class="%s"></i></button>`,
		html.EscapeString(icon)))
	sb.WriteString("\n")
	sb.WriteString(`<button type="button" id="nav-toggle" class="nav-toggle" lv-click="nav:toggle" aria-label="Toggle menu" aria-controls="nav-menu"><span></span><span></span><span></span></button>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</nav>`)
	sb.WriteString("\n")

	return sb.String()
}
