package content

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Dev Charan Sai P", p.Owner.Name)
	assert.Equal(t, []string{"web", "data", "mobile"}, p.Categories())
	assert.Equal(t, 8, p.SkillCount())
	assert.Equal(t, "task-manager", p.Projects[0].ID)
	assert.Contains(t, string(p.About.BodyHTML), "<strong>fast, accessible interfaces</strong>")
}

func TestLoad_MemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := `
owner:
  name: Ada
projects:
  - title: Engine Notes
    category: Research
    description: "Uses `+"`go`"+` and *care*."
  - id: custom
    title: Other
    category: web
`
	require.NoError(t, afero.WriteFile(fs, "/site/portfolio.yaml", []byte(doc), 0644))

	p, err := Load(fs, "/site/portfolio.yaml")
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Owner.Name)
	assert.Equal(t, "engine-notes", p.Projects[0].ID)
	assert.Equal(t, "research", p.Projects[0].Category)
	assert.Equal(t, "custom", p.Projects[1].ID)
	assert.Contains(t, string(p.Projects[0].DescriptionHTML), "<em>care</em>")
	assert.Empty(t, p.About.BodyHTML)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	p, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, "Dev Charan Sai P", p.Owner.Name)
}

func TestLoad_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Load(fs, "/missing.yaml")
	assert.Error(t, err)

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no owner", "owner: {}\n", ErrNoOwner},
		{"bad level", "owner: {name: A}\nskills:\n  - name: X\n    skills: [{name: Go, level: 120}]\n", ErrInvalidLevel},
		{"no category", "owner: {name: A}\nprojects: [{title: P}]\n", ErrMissingCategory},
		{"duplicate id", "owner: {name: A}\nprojects: [{title: P, category: web}, {title: P, category: data}]\n", ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, afero.WriteFile(fs, "/p.yaml", []byte(tt.doc), 0644))
			_, err := Load(fs, "/p.yaml")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "weather-dashboard", slug("Weather Dashboard"))
	assert.Equal(t, "c-tools", slug("  C++ Tools!"))
	assert.Equal(t, "", slug("***"))
}
