// Package content loads the portfolio text: owner details, about copy,
// skills, projects and achievements. Content is a YAML file whose prose
// fields are Markdown.
package content

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultContent []byte

// Content errors.
var (
	ErrNoOwner         = errors.New("owner.name is required")
	ErrInvalidLevel    = errors.New("skill level must be between 0 and 100")
	ErrMissingCategory = errors.New("project category is required")
	ErrDuplicateID     = errors.New("duplicate project id")
)

// Portfolio is the full page content.
type Portfolio struct {
	Owner        Owner           `yaml:"owner"`
	About        About           `yaml:"about"`
	Skills       []SkillCategory `yaml:"skills"`
	Projects     []Project       `yaml:"projects"`
	Achievements []Achievement   `yaml:"achievements"`
}

// Owner is the person the portfolio presents.
type Owner struct {
	Name     string   `yaml:"name"`
	Title    string   `yaml:"title"`
	Tagline  string   `yaml:"tagline"`
	Image    string   `yaml:"image"`
	Email    string   `yaml:"email"`
	Phone    string   `yaml:"phone"`
	Location string   `yaml:"location"`
	Socials  []Social `yaml:"socials"`
}

// Social is a profile link shown in the footer and contact section.
type Social struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon"`
}

// About is the introduction section.
type About struct {
	Body       string      `yaml:"body"`
	Highlights []Highlight `yaml:"highlights"`

	BodyHTML template.HTML `yaml:"-"`
}

// Highlight is a short fact card in the about section.
type Highlight struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// SkillCategory groups skills under a heading.
type SkillCategory struct {
	Name   string  `yaml:"name"`
	Icon   string  `yaml:"icon"`
	Skills []Skill `yaml:"skills"`
}

// Skill is one progress bar. Level is a percentage.
type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// Project is one filterable project card.
type Project struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Category    string   `yaml:"category"`
	Icon        string   `yaml:"icon"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Link        string   `yaml:"link"`

	DescriptionHTML template.HTML `yaml:"-"`
}

// Achievement is a recognition card.
type Achievement struct {
	Icon  string `yaml:"icon"`
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Default returns the built-in portfolio.
func Default() (*Portfolio, error) {
	p, err := Parse(defaultContent)
	if err != nil {
		return nil, errors.Wrap(err, "built-in content")
	}
	return p, nil
}

// Load reads the portfolio at path from fsys. An empty path returns the
// built-in portfolio.
func Load(fsys afero.Fs, path string) (*Portfolio, error) {
	if path == "" {
		return Default()
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading content %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "content %s", path)
	}
	return p, nil
}

// Parse decodes, validates and renders a portfolio document.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	p.normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.render(NewMarkdown()); err != nil {
		return nil, err
	}
	return &p, nil
}

// normalize fills project ids from titles and lower-cases categories so
// they can be used as filter values.
func (p *Portfolio) normalize() {
	for i := range p.Projects {
		pr := &p.Projects[i]
		pr.Category = strings.ToLower(strings.TrimSpace(pr.Category))
		if pr.ID == "" {
			pr.ID = slug(pr.Title)
		}
	}
}

// Validate checks the invariants the page relies on.
func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.Owner.Name) == "" {
		return ErrNoOwner
	}
	for _, c := range p.Skills {
		for _, s := range c.Skills {
			if s.Level < 0 || s.Level > 100 {
				return errors.Wrapf(ErrInvalidLevel, "%s: %d", s.Name, s.Level)
			}
		}
	}
	seen := make(map[string]bool, len(p.Projects))
	for _, pr := range p.Projects {
		if pr.Category == "" {
			return errors.Wrap(ErrMissingCategory, pr.Title)
		}
		if seen[pr.ID] {
			return errors.Wrap(ErrDuplicateID, pr.ID)
		}
		seen[pr.ID] = true
	}
	return nil
}

func (p *Portfolio) render(md goldmark.Markdown) error {
	body, err := renderMarkdown(md, p.About.Body)
	if err != nil {
		return errors.Wrap(err, "about")
	}
	p.About.BodyHTML = body

	for i := range p.Projects {
		html, err := renderMarkdown(md, p.Projects[i].Description)
		if err != nil {
			return errors.Wrapf(err, "project %s", p.Projects[i].ID)
		}
		p.Projects[i].DescriptionHTML = html
	}
	return nil
}

// Categories returns the distinct project categories in order of first
// appearance.
func (p *Portfolio) Categories() []string {
	return lo.Uniq(lo.Map(p.Projects, func(pr Project, _ int) string { return pr.Category }))
}

// SkillCount returns the number of skills over all categories.
func (p *Portfolio) SkillCount() int {
	return lo.SumBy(p.Skills, func(c SkillCategory) int { return len(c.Skills) })
}

// NewMarkdown returns the Markdown renderer used for prose fields.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

func renderMarkdown(md goldmark.Markdown, src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
