package components

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gabrielmiguelok/golivefolio/internal/content"
)

func sectionOpen(sb *strings.Builder, id, title string) {
	sb.WriteString(fmt.Sprintf(`<section id="%s" class="section" aria-labelledby="%s-title">`, id, id))
	sb.WriteString("\n")
	sb.WriteString(`<div class="container">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h2 id="%s-title" class="section-title">%s</h2>`, id, html.EscapeString(title)))
	sb.WriteString("\n")
}

func sectionClose(sb *strings.Builder) {
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")
}

// iconCard renders the icon/title/text card shared by highlights and
// achievements.
func iconCard(sb *strings.Builder, id, class, icon, title, text string) {
	sb.WriteString(fmt.Sprintf(`<div id="%s" class="%s" %s>`, id, class, ObserveAttr))
	sb.WriteString(fmt.Sprintf(`<i class="%s" aria-hidden="true"></i>`, html.EscapeString(icon)))
	sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, html.EscapeString(title)))
	sb.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(text)))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
}

// RenderAbout generates the about section. The body is pre-rendered
// Markdown.
func RenderAbout(about content.About) string {
	var sb strings.Builder
	sectionOpen(&sb, "about", "About Me")

	sb.WriteString(fmt.Sprintf(`<div id="%s" class="about-content" %s>`, AboutContentID, ObserveAttr))
	sb.WriteString(string(about.BodyHTML))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	if len(about.Highlights) > 0 {
		sb.WriteString(`<div class="grid grid-3">`)
		sb.WriteString("\n")
		for i, h := range about.Highlights {
			iconCard(&sb, HighlightID(i), "highlight-item", h.Icon, h.Title, h.Text)
		}
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}

	sectionClose(&sb)
	return sb.String()
}

// RenderSkills generates the skill categories. Bars start empty; each
// carries its level in data-level and fills when scrolled into view.
func RenderSkills(categories []content.SkillCategory) string {
	var sb strings.Builder
	sectionOpen(&sb, "skills", "Skills")

	sb.WriteString(`<div class="grid grid-3">`)
	sb.WriteString("\n")
	for i, c := range categories {
		sb.WriteString(fmt.Sprintf(`<div id="%s" class="skill-category" %s>`, SkillCategoryID(i), ObserveAttr))
		sb.WriteString(fmt.Sprintf(`<h3><i class="%s" aria-hidden="true"></i> %s</h3>`,
			html.EscapeString(c.Icon), html.EscapeString(c.Name)))
		sb.WriteString("\n")
		for j, s := range c.Skills {
			level := strconv.Itoa(s.Level)
			sb.WriteString(`<div class="skill-item">`)
			sb.WriteString(fmt.Sprintf(`<div class="skill-info"><span>%s</span><span>%s%%</span></div>`,
				html.EscapeString(s.Name), level))
			sb.WriteString(fmt.Sprintf(`<div class="skill-bar" role="progressbar" aria-valuenow="%s" aria-valuemin="0" aria-valuemax="100"><div id="%s" class="skill-progress" data-level="%s" %s></div></div>`,
				level, SkillBarID(i, j), level, ObserveAttr))
			sb.WriteString(`</div>`)
			sb.WriteString("\n")
		}
		sb.WriteString(`</div>`)
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sectionClose(&sb)
	return sb.String()
}

// ProjectsOptions configures the projects section.
type ProjectsOptions struct {
	Projects   []content.Project
	Categories []string
	// Active is the selected filter value
	Active string
	// Visible is the number of cards shown, rendered in a live slot
	Visible int
}

// RenderProjects generates the filter buttons and the project cards.
func RenderProjects(opts ProjectsOptions) string {
	var sb strings.Builder
	sectionOpen(&sb, "projects", "Projects")

	active := opts.Active
	if active == "" {
		active = "all"
	}

	sb.WriteString(`<div class="project-filters" role="group" aria-label="Filter projects">`)
	sb.WriteString("\n")
	filters := append([]string{"all"}, opts.Categories...)
	for _, f := range filters {
		class := "filter-btn"
		if f == active {
			class += " active"
		}
		label := capitalize(f)
		sb.WriteString(fmt.Sprintf(`<button type="button" class="%s" data-filter="%s" lv-click="filter" lv-value-filter="%s">%s</button>`,
			class, html.EscapeString(f), html.EscapeString(f), html.EscapeString(label)))
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<p class="sr-only" aria-live="polite">Showing <span data-slot="%s">%d</span> projects</p>`,
		ProjectCountSlot, opts.Visible))
	sb.WriteString("\n")

	sb.WriteString(`<div class="grid grid-3">`)
	sb.WriteString("\n")
	for _, p := range opts.Projects {
		sb.WriteString(fmt.Sprintf(`<article id="%s" class="project-card" data-category="%s" %s>`,
			ProjectCardID(p.ID), html.EscapeString(p.Category), ObserveAttr))
		if p.Icon != "" {
			sb.WriteString(fmt.Sprintf(`<div class="project-icon"><i class="%s" aria-hidden="true"></i></div>`, html.EscapeString(p.Icon)))
		}
		sb.WriteString(fmt.Sprintf(`<h3>%s</h3>`, html.EscapeString(p.Title)))
		sb.WriteString(`<div class="project-description">`)
		sb.WriteString(string(p.DescriptionHTML))
		sb.WriteString(`</div>`)
		if len(p.Tags) > 0 {
			sb.WriteString(`<div class="project-tags">`)
			for _, t := range p.Tags {
				sb.WriteString(fmt.Sprintf(`<span class="project-tag">%s</span>`, html.EscapeString(t)))
			}
			sb.WriteString(`</div>`)
		}
		if p.Link != "" {
			sb.WriteString(fmt.Sprintf(`<a href="%s" class="btn btn-outline" target="_blank" rel="noopener noreferrer"><i class="fab fa-github"></i> Code</a>`,
				html.EscapeString(p.Link)))
		}
		sb.WriteString(`</article>`)
		sb.WriteString("\n")
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sectionClose(&sb)
	return sb.String()
}

// RenderAchievements generates the achievement cards.
func RenderAchievements(achievements []content.Achievement) string {
	var sb strings.Builder
	sectionOpen(&sb, "achievements", "Achievements")

	sb.WriteString(`<div class="grid grid-3">`)
	sb.WriteString("\n")
	for i, a := range achievements {
		iconCard(&sb, AchievementID(i), "achievement-card", a.Icon, a.Title, a.Text)
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sectionClose(&sb)
	return sb.String()
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
