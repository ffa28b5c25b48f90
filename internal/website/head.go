package website

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
)

// RenderHead generates a complete <head> section with SEO, Open Graph, and JSON-LD.
func RenderHead(cfg PageConfig, customCSS string) string {
	var sb strings.Builder

	themeColor := cfg.ThemeColor
	if themeColor == "" {
		themeColor = LightColors["primary"]
	}

	sb.WriteString("<head>\n")

	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")

	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(cfg.Title)))

	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if len(cfg.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf(`<meta name="keywords" content="%s">`+"\n", html.EscapeString(strings.Join(cfg.Keywords, ", "))))
	}
	if cfg.Author != "" {
		sb.WriteString(fmt.Sprintf(`<meta name="author" content="%s">`+"\n", html.EscapeString(cfg.Author)))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="canonical" href="%s">`+"\n", html.EscapeString(cfg.URL)))
	}

	sb.WriteString(fmt.Sprintf(`<meta name="theme-color" content="%s">`+"\n", themeColor))
	sb.WriteString(`<meta name="robots" content="index, follow">` + "\n")

	sb.WriteString(renderOpenGraph(cfg))
	sb.WriteString(renderJSONLD(cfg))

	// The client swaps this element's href when the theme changes.
	if cfg.Favicon != "" {
		sb.WriteString(fmt.Sprintf(`<link rel="icon" id="favicon" href="%s">`+"\n", html.EscapeString(cfg.Favicon)))
	}

	sb.WriteString(fmt.Sprintf(`<link rel="stylesheet" href="%s">`+"\n", IconsStylesheet))

	sb.WriteString("<style>\n")
	sb.WriteString(RenderStyles())
	if customCSS != "" {
		sb.WriteString("\n")
		sb.WriteString(customCSS)
	}
	sb.WriteString("\n</style>\n")

	sb.WriteString("</head>\n")

	return sb.String()
}

func renderOpenGraph(cfg PageConfig) string {
	var sb strings.Builder

	sb.WriteString(`<meta property="og:type" content="profile">` + "\n")

	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:title" content="%s">`+"\n", html.EscapeString(cfg.Title)))
	}
	if cfg.Description != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:description" content="%s">`+"\n", html.EscapeString(cfg.Description)))
	}
	if cfg.URL != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:url" content="%s">`+"\n", html.EscapeString(cfg.URL)))
	}
	if cfg.OGImage != "" {
		sb.WriteString(fmt.Sprintf(`<meta property="og:image" content="%s">`+"\n", html.EscapeString(cfg.OGImage)))
	}

	return sb.String()
}

func renderJSONLD(cfg PageConfig) string {
	person := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     cfg.Author,
	}
	if cfg.Description != "" {
		person["description"] = cfg.Description
	}
	if cfg.URL != "" {
		person["url"] = cfg.URL
	}
	data, err := json.Marshal(person)
	if err != nil {
		return ""
	}
	// keep "</script>" in values from closing the tag
	safe := strings.ReplaceAll(string(data), "</", `<\/`)
	return fmt.Sprintf(`<script type="application/ld+json">%s</script>`+"\n", safe)
}

// RenderDocument wraps content in a complete HTML document with the loading
// overlay and the live client script.
func RenderDocument(cfg PageConfig, customCSS, bodyContent string) string {
	lang := cfg.Language
	if lang == "" {
		lang = "en"
	}
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "light"
	}
	script := cfg.Script
	if script == "" {
		script = ClientScript
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="%s" data-color-scheme="%s">
%s<body>
<div class="loading" aria-hidden="true"><div class="spinner"></div></div>
%s
<script src="%s" defer></script>
</body>
</html>`, lang, html.EscapeString(scheme), RenderHead(cfg, customCSS), bodyContent, html.EscapeString(script))
}
