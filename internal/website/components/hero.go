package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/gabrielmiguelok/golivefolio/internal/content"
)

// RenderHero generates the landing section: particles container, profile
// image, the typed name and the calls to action. The name is rendered in
// full so the page reads correctly before the client connects.
func RenderHero(owner content.Owner) string {
	var sb strings.Builder

	sb.WriteString(`<section id="home" class="hero" aria-labelledby="hero-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="hero-particles" aria-hidden="true"></div>`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container hero-content">`)
	sb.WriteString("\n")

	if owner.Image != "" {
		sb.WriteString(fmt.Sprintf(`<img id="%s" class="profile-img" %s src="%s" alt="%s" loading="lazy">`,
			ProfileImageID, ObserveAttr,
			html.EscapeString(owner.Image),
			html.EscapeString(owner.Name)))
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf(`<h1 id="hero-title" class="hero-title">Hi, I'm <span id="typing-text" class="typing-text">%s</span></h1>`,
		html.EscapeString(owner.Name)))
	sb.WriteString("\n")

	if owner.Title != "" {
		sb.WriteString(fmt.Sprintf(`<p class="hero-subtitle">%s</p>`, html.EscapeString(owner.Title)))
		sb.WriteString("\n")
	}
	if owner.Tagline != "" {
		sb.WriteString(fmt.Sprintf(`<p class="hero-tagline">%s</p>`, html.EscapeString(owner.Tagline)))
		sb.WriteString("\n")
	}

	sb.WriteString(`<div class="hero-actions">`)
	sb.WriteString("\n")
	sb.WriteString(`<a href="#projects" class="btn btn-primary"><i class="fas fa-folder-open"></i> View Projects</a>`)
	sb.WriteString("\n")
	sb.WriteString(`<a href="#contact" class="btn btn-outline"><i class="fas fa-paper-plane"></i> Get in Touch</a>`)
	sb.WriteString("\n")
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}
