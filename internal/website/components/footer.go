package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/gabrielmiguelok/golivefolio/internal/content"
)

// FooterOptions configures the footer component.
type FooterOptions struct {
	Owner content.Owner
	// Year is the copyright year
	Year int
}

// RenderFooter generates the page footer with social links.
func RenderFooter(opts FooterOptions) string {
	var sb strings.Builder

	sb.WriteString(`<footer class="footer" role="contentinfo">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")

	if len(opts.Owner.Socials) > 0 {
		sb.WriteString(`<div class="social-links">`)
		for _, s := range opts.Owner.Socials {
			sb.WriteString(fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" aria-label="%s"><i class="%s"></i></a>`,
				html.EscapeString(s.URL),
				html.EscapeString(s.Name),
				html.EscapeString(s.Icon)))
		}
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf(`<p>&copy; %d %s. All rights reserved.</p>`, opts.Year, html.EscapeString(opts.Owner.Name)))
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</footer>`)
	sb.WriteString("\n")

	return sb.String()
}
