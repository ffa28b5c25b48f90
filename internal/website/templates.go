// Package website renders the portfolio document shell: head, stylesheet
// and the body wrapper around the page sections.
package website

import "github.com/gabrielmiguelok/golivefolio/client"

// ClientScript is the path of the live client served by the server.
const ClientScript = "/_live/" + client.Script

// IconsStylesheet provides the fas/fab icon classes used by the page.
const IconsStylesheet = "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css"

// PageConfig defines the document metadata.
type PageConfig struct {
	// Title is the page title (shown in browser tab and search results)
	Title string
	// Description is the meta description for SEO
	Description string
	// URL is the canonical URL of the page
	URL string
	// Keywords are SEO keywords for the page
	Keywords []string
	// Author is the person the portfolio presents
	Author string
	// OGImage is the Open Graph image URL (for social sharing)
	OGImage string
	// Language is the page language (default: "en")
	Language string
	// ThemeColor is the mobile browser theme color
	ThemeColor string
	// Scheme is the initial data-color-scheme ("light" or "dark")
	Scheme string
	// Favicon is the favicon URL; the theme's data URL in practice
	Favicon string
	// Script is the client script path (default: ClientScript)
	Script string
}

// NavLink represents a navigation link.
type NavLink struct {
	Label string
	URL   string
}

// DefaultPageConfig returns a PageConfig with sensible defaults.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Language:   "en",
		ThemeColor: LightColors["primary"],
		Scheme:     "light",
		Script:     ClientScript,
	}
}
